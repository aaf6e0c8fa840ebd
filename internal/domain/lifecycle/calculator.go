// Package lifecycle holds the pure rules of the event state machine: the
// status calculator, the table of legal transitions and the capability views
// derived from a status.
package lifecycle

import (
	"time"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
)

// Calculate returns the status an event should be in at now. It never fails
// and has no side effects.
//
// Terminal statuses are kept as is. Otherwise thresholds are checked from the
// latest to the earliest, so a client that missed ticks lands directly on the
// right status. A manual confirmation is sticky before the start.
// minParticipants is deliberately not used: confirmation is manual only.
func Calculate(e entities.Event, now time.Time) domain.Status {
	switch {
	case e.Status == domain.StatusCancelled:
		return domain.StatusCancelled
	case e.Status == domain.StatusCompleted:
		return domain.StatusCompleted
	case !now.Before(e.EvaluationDeadline):
		return domain.StatusCompleted
	case !now.Before(e.ScheduledEnd):
		return domain.StatusFinished
	case !now.Before(e.ScheduledStart):
		return domain.StatusInProgress
	case e.Status == domain.StatusConfirmed:
		return domain.StatusConfirmed
	default:
		return domain.StatusOpen
	}
}

// NextThreshold returns the next instant at which Calculate may return a
// different status for e, given its persisted status. ok is false for
// terminal events.
func NextThreshold(e entities.Event) (at time.Time, ok bool) {
	switch e.Status {
	case domain.StatusOpen, domain.StatusConfirmed:
		return e.ScheduledStart, true
	case domain.StatusInProgress:
		return e.ScheduledEnd, true
	case domain.StatusFinished:
		return e.EvaluationDeadline, true
	default:
		return time.Time{}, false
	}
}
