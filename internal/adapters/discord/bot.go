package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Bot owns the Discord session used to reach event creators.
type Bot struct {
	session *discordgo.Session
	log     *slog.Logger
}

// NewBot creates a session for token without opening it.
func NewBot(token string, log *slog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsDirectMessages
	return &Bot{session: s, log: log}, nil
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	b.log.Info("🤖 Discord session open")
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// Session is what the notifier sends messages through.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}
