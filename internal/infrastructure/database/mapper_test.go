package database

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"tablemate/internal/domain"
	"tablemate/internal/infrastructure/database/sqlc_generated"
)

func TestEventToDomain(t *testing.T) {
	req := require.New(t)
	start := time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC)

	e := eventToDomain(sqlc_generated.Event{
		ID:                 12,
		CreatorID:          "alice",
		Title:              "Pho",
		Kind:               "institutional",
		ScheduledStart:     timeToPgtypeTimestamptz(start),
		ScheduledEnd:       timeToPgtypeTimestamptz(start.Add(time.Hour)),
		EvaluationDeadline: timeToPgtypeTimestamptz(start.Add(25 * time.Hour)),
		MinParticipants:    4,
		Status:             "cancelled",
		CancelReason:       textOrNull("flooded"),
	})

	req.Equal(uint(12), e.ID)
	req.Equal(domain.KindInstitutional, e.Kind)
	req.Equal(domain.StatusCancelled, e.Status)
	req.Equal("flooded", e.CancelReason)
	req.Equal(start, e.ScheduledStart)
	req.Equal(4, e.MinParticipants)
	req.True(e.StatusChangedAt.IsZero())
}

func TestPgtypeHelpers(t *testing.T) {
	req := require.New(t)
	req.False(timeToPgtypeTimestamptz(time.Time{}).Valid)
	req.True(pgtypeTimestamptzToTime(pgtype.Timestamptz{}).IsZero())
	req.False(textOrNull("").Valid)
	req.Equal(pgtype.Text{String: "x", Valid: true}, textOrNull("x"))
}

func TestParticipationToDomain(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	p := participationToDomain(sqlc_generated.Participation{
		ID:                  3,
		EventID:             12,
		UserID:              "bob",
		Status:              "approved",
		OrgApproved:         true,
		PresenceConfirmed:   true,
		PresenceConfirmedAt: timeToPgtypeTimestamptz(at),
	})

	req.Equal(uint(12), p.EventID)
	req.Equal(domain.ParticipationApproved, p.Status)
	req.True(p.OrgApproved)
	req.Equal(at, p.PresenceConfirmedAt)
}
