package entities

import (
	"time"

	"tablemate/internal/domain"
)

// Participation represents a user's application to an event.
type Participation struct {
	ID                  uint
	EventID             uint
	UserID              string
	Status              domain.ParticipationStatus
	OrgApproved         bool // only meaningful for institutional events
	PresenceConfirmed   bool
	PresenceConfirmedAt time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
