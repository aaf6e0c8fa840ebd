package discord

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/infrastructure/i18n"
)

type fakeMessenger struct {
	channelErr error
	sendErr    error
	recipients []string
	sent       map[string][]string
}

func (f *fakeMessenger) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	f.recipients = append(f.recipients, recipientID)
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func (f *fakeMessenger) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if f.sent == nil {
		f.sent = map[string][]string{}
	}
	f.sent[channelID] = append(f.sent[channelID], content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func newTestNotifier(m Messenger) *Notifier {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewNotifier(m, i18n.NewTranslator("en", log), "en", time.UTC, log)
}

func transition(to domain.Status) entities.Transition {
	start := time.Date(2026, 5, 2, 20, 0, 0, 0, time.UTC)
	return entities.Transition{
		Event: entities.Event{
			ID:                 3,
			CreatorID:          "u-42",
			Title:              "Ramen",
			ScheduledStart:     start,
			ScheduledEnd:       start.Add(2 * time.Hour),
			EvaluationDeadline: start.Add(26 * time.Hour),
			Status:             to,
			CancelReason:       "kitchen closed",
		},
		From: domain.StatusConfirmed,
		To:   to,
	}
}

func TestNotifier_Message(t *testing.T) {
	n := newTestNotifier(&fakeMessenger{})

	tests := []struct {
		to   domain.Status
		want string
		ok   bool
	}{
		{domain.StatusConfirmed, "✅ Ramen is confirmed for 02/05/2026 20:00.", true},
		{domain.StatusInProgress, "🍽️ Ramen has started. Enjoy your meal!", true},
		{domain.StatusFinished, "⭐ Ramen is over. Ratings are open until 03/05/2026 22:00.", true},
		{domain.StatusCancelled, "❌ Ramen was cancelled: kitchen closed", true},
		{domain.StatusCompleted, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.to.String(), func(t *testing.T) {
			msg, ok := n.Message(transition(tt.to))
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, msg)
		})
	}
}

func TestNotifier_NotifyTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("should DM the creator", func(t *testing.T) {
		req := require.New(t)
		m := &fakeMessenger{}

		req.NoError(newTestNotifier(m).NotifyTransition(ctx, transition(domain.StatusInProgress)))

		req.Equal([]string{"u-42"}, m.recipients)
		req.Len(m.sent["dm-u-42"], 1)
	})

	t.Run("should stay silent on completion", func(t *testing.T) {
		req := require.New(t)
		m := &fakeMessenger{}

		req.NoError(newTestNotifier(m).NotifyTransition(ctx, transition(domain.StatusCompleted)))
		req.Empty(m.recipients)
	})

	t.Run("should report Discord failures", func(t *testing.T) {
		req := require.New(t)
		boom := errors.New("429 too many requests")

		err := newTestNotifier(&fakeMessenger{channelErr: boom}).NotifyTransition(ctx, transition(domain.StatusCancelled))
		req.ErrorIs(err, boom)

		err = newTestNotifier(&fakeMessenger{sendErr: boom}).NotifyTransition(ctx, transition(domain.StatusCancelled))
		req.ErrorIs(err, boom)
	})

	t.Run("should not call Discord once the context is done", func(t *testing.T) {
		req := require.New(t)
		m := &fakeMessenger{}
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		req.ErrorIs(newTestNotifier(m).NotifyTransition(cctx, transition(domain.StatusConfirmed)), context.Canceled)
		req.Empty(m.recipients)
	})
}
