package entities

import (
	"time"

	"tablemate/internal/domain"
)

// Event is the aggregate under lifecycle control.
type Event struct {
	ID                        uint
	CreatorID                 string
	Title                     string
	Kind                      domain.EventKind
	ScheduledStart            time.Time
	ScheduledEnd              time.Time
	EvaluationDeadline        time.Time // ratings stay open until then
	MinParticipants           int
	ConfirmedParticipantCount int // derived from approved participations
	Status                    domain.Status
	StatusChangedAt           time.Time
	CancelReason              string // set only when Status == cancelled
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

func (e *Event) IsCreator(userID string) bool {
	return e.CreatorID != "" && e.CreatorID == userID
}

// ValidSchedule checks start < end < evaluation deadline.
func (e *Event) ValidSchedule() bool {
	return e.ScheduledStart.Before(e.ScheduledEnd) && e.ScheduledEnd.Before(e.EvaluationDeadline)
}

// StatusChange is the set of columns written by a successful transition.
type StatusChange struct {
	Status       domain.Status
	ChangedAt    time.Time
	CancelReason string
}

// Transition describes a status change that was persisted.
type Transition struct {
	Event  Event // record as stored after the change
	From   domain.Status
	To     domain.Status
	Manual bool
	Actor  string // creator for manual actions, empty for time-driven ones
}
