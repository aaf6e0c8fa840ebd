package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
)

var base = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

func newEvent(status domain.Status) entities.Event {
	return entities.Event{
		ID:                 1,
		CreatorID:          "creator",
		Title:              "Dinner",
		ScheduledStart:     base.Add(time.Hour),
		ScheduledEnd:       base.Add(3 * time.Hour),
		EvaluationDeadline: base.Add(27 * time.Hour),
		MinParticipants:    2,
		Status:             status,
	}
}

func TestCalculate(t *testing.T) {
	e := newEvent(domain.StatusOpen)

	tests := []struct {
		name   string
		status domain.Status
		now    time.Time
		want   domain.Status
	}{
		{"open before start", domain.StatusOpen, base, domain.StatusOpen},
		{"confirmed before start stays confirmed", domain.StatusConfirmed, base, domain.StatusConfirmed},
		{"open at start", domain.StatusOpen, e.ScheduledStart, domain.StatusInProgress},
		{"confirmed after start", domain.StatusConfirmed, e.ScheduledStart.Add(time.Second), domain.StatusInProgress},
		{"in progress at end", domain.StatusInProgress, e.ScheduledEnd, domain.StatusFinished},
		{"finished before deadline", domain.StatusFinished, e.EvaluationDeadline.Add(-time.Second), domain.StatusFinished},
		{"finished at deadline", domain.StatusFinished, e.EvaluationDeadline, domain.StatusCompleted},
		{"open long after deadline", domain.StatusOpen, e.EvaluationDeadline.Add(48 * time.Hour), domain.StatusCompleted},
		{"cancelled before start", domain.StatusCancelled, base, domain.StatusCancelled},
		{"cancelled after deadline", domain.StatusCancelled, e.EvaluationDeadline.Add(time.Hour), domain.StatusCancelled},
		{"completed stays completed", domain.StatusCompleted, base, domain.StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := e
			ev.Status = tt.status
			require.Equal(t, tt.want, Calculate(ev, tt.now))
		})
	}
}

func TestCalculate_Scenarios(t *testing.T) {
	t.Run("should move an open event to in progress one second after start", func(t *testing.T) {
		req := require.New(t)
		e := newEvent(domain.StatusOpen)

		req.Equal(domain.StatusOpen, Calculate(e, base))
		req.Equal(domain.StatusInProgress, Calculate(e, e.ScheduledStart.Add(time.Second)))
	})

	t.Run("should keep a manual confirmation before the start", func(t *testing.T) {
		e := newEvent(domain.StatusConfirmed)
		require.Equal(t, domain.StatusConfirmed, Calculate(e, base.Add(30*time.Minute)))
	})

	t.Run("should jump straight to completed when every tick was missed", func(t *testing.T) {
		e := newEvent(domain.StatusOpen)
		require.Equal(t, domain.StatusCompleted, Calculate(e, e.EvaluationDeadline))
	})

	t.Run("should stay cancelled whatever the time", func(t *testing.T) {
		req := require.New(t)
		e := newEvent(domain.StatusCancelled)
		e.CancelReason = "no-show risk"
		for _, now := range []time.Time{base, e.ScheduledStart, e.ScheduledEnd, e.EvaluationDeadline.Add(time.Hour)} {
			req.Equal(domain.StatusCancelled, Calculate(e, now))
		}
	})

	t.Run("should never confirm on participant count alone", func(t *testing.T) {
		e := newEvent(domain.StatusOpen)
		e.ConfirmedParticipantCount = 10
		require.Equal(t, domain.StatusOpen, Calculate(e, base))
	})
}

func TestCalculate_IsMonotonic(t *testing.T) {
	for _, status := range []domain.Status{
		domain.StatusOpen, domain.StatusConfirmed, domain.StatusInProgress,
		domain.StatusFinished, domain.StatusCompleted, domain.StatusCancelled,
	} {
		t.Run(status.String(), func(t *testing.T) {
			e := newEvent(status)
			prev := Calculate(e, base)
			for now := base; now.Before(e.EvaluationDeadline.Add(2 * time.Hour)); now = now.Add(10 * time.Minute) {
				got := Calculate(e, now)
				require.GreaterOrEqual(t, got.Rank(), prev.Rank(), "went back from %s to %s at %s", prev, got, now)
				prev = got
			}
		})
	}
}

func TestNextThreshold(t *testing.T) {
	e := newEvent(domain.StatusOpen)

	tests := []struct {
		status domain.Status
		want   time.Time
		ok     bool
	}{
		{domain.StatusOpen, e.ScheduledStart, true},
		{domain.StatusConfirmed, e.ScheduledStart, true},
		{domain.StatusInProgress, e.ScheduledEnd, true},
		{domain.StatusFinished, e.EvaluationDeadline, true},
		{domain.StatusCompleted, time.Time{}, false},
		{domain.StatusCancelled, time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			ev := e
			ev.Status = tt.status
			at, ok := NextThreshold(ev)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, at)
			if ok {
				require.NotEqual(t, tt.status, Calculate(ev, at))
			}
		})
	}
}
