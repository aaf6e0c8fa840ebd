package application

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/infrastructure/clock"
	"tablemate/internal/infrastructure/memory"
)

var base = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture is an event starting one hour after base.
func fixture(id uint, status domain.Status) entities.Event {
	return entities.Event{
		ID:                 id,
		CreatorID:          "creator",
		Title:              "Dinner at Lou's",
		Kind:               domain.KindSocial,
		ScheduledStart:     base.Add(time.Hour),
		ScheduledEnd:       base.Add(3 * time.Hour),
		EvaluationDeadline: base.Add(27 * time.Hour),
		MinParticipants:    2,
		Status:             status,
		StatusChangedAt:    base,
	}
}

type env struct {
	store *memory.Store
	clock *clock.Manual
	gate  *Gate
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	clk := clock.NewManual(base)
	return &env{
		store: store,
		clock: clk,
		gate:  NewGate(store, clk, nil, time.Second, discardLogger()),
	}
}

type recordingTracker struct {
	tracked []entities.Event
}

func (r *recordingTracker) Track(e entities.Event) {
	r.tracked = append(r.tracked, e)
}
