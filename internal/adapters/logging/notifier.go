// Package logging holds adapters that only write to the structured log.
package logging

import (
	"context"
	"log/slog"

	"tablemate/internal/domain/entities"
	"tablemate/internal/ports/output"
)

var _ output.Notifier = (*Notifier)(nil)

// Notifier logs transitions; used when no Discord token is configured.
type Notifier struct {
	log *slog.Logger
}

func NewNotifier(log *slog.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) NotifyTransition(_ context.Context, t entities.Transition) error {
	n.log.Info("event transition",
		"event_id", t.Event.ID,
		"from", t.From,
		"to", t.To,
		"manual", t.Manual,
		"actor", t.Actor)
	return nil
}
