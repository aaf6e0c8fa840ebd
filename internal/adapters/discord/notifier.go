package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/ports/output"
	"tablemate/pkg/datetime"
)

// Messenger is the subset of *discordgo.Session used to DM creators.
type Messenger interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ output.Notifier = (*Notifier)(nil)

// Notifier DMs the creator when an event starts, finishes, is confirmed or is
// cancelled. Completion is silent.
type Notifier struct {
	messenger  Messenger
	translator output.T
	locale     string
	loc        *time.Location
	log        *slog.Logger
}

func NewNotifier(messenger Messenger, translator output.T, locale string, loc *time.Location, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{
		messenger:  messenger,
		translator: translator,
		locale:     locale,
		loc:        loc,
		log:        log,
	}
}

func (n *Notifier) NotifyTransition(ctx context.Context, t entities.Transition) error {
	content, ok := n.Message(t)
	if !ok || t.Event.CreatorID == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	ch, err := n.messenger.UserChannelCreate(t.Event.CreatorID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create creator DM channel: %w", err)
	}
	if ch == nil {
		return fmt.Errorf("create creator DM channel: no channel for user %s", t.Event.CreatorID)
	}
	if _, err := n.messenger.ChannelMessageSend(ch.ID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send creator DM: %w", err)
	}
	n.log.Debug("creator notified", "event_id", t.Event.ID, "status", t.To)
	return nil
}

// Message renders the DM for t. ok is false when the transition is not worth
// a message.
func (n *Notifier) Message(t entities.Transition) (string, bool) {
	data := map[string]any{
		"Title":    t.Event.Title,
		"Start":    datetime.Format(t.Event.ScheduledStart, n.loc),
		"Deadline": datetime.Format(t.Event.EvaluationDeadline, n.loc),
		"Reason":   t.Event.CancelReason,
	}
	switch t.To {
	case domain.StatusConfirmed, domain.StatusInProgress, domain.StatusFinished, domain.StatusCancelled:
		return n.translator.T(n.locale, "notify."+string(t.To), data), true
	default:
		return "", false
	}
}
