package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/infrastructure/database/sqlc_generated"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToPgtypeTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// textOrNull maps "" to SQL NULL.
func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func eventToDomain(e sqlc_generated.Event) entities.Event {
	return entities.Event{
		ID:                 uint(e.ID),
		CreatorID:          e.CreatorID,
		Title:              e.Title,
		Kind:               domain.EventKind(e.Kind),
		ScheduledStart:     pgtypeTimestamptzToTime(e.ScheduledStart),
		ScheduledEnd:       pgtypeTimestamptzToTime(e.ScheduledEnd),
		EvaluationDeadline: pgtypeTimestamptzToTime(e.EvaluationDeadline),
		MinParticipants:    int(e.MinParticipants),
		Status:             domain.Status(e.Status),
		StatusChangedAt:    pgtypeTimestamptzToTime(e.StatusChangedAt),
		CancelReason:       e.CancelReason.String,
		CreatedAt:          pgtypeTimestamptzToTime(e.CreatedAt),
		UpdatedAt:          pgtypeTimestamptzToTime(e.UpdatedAt),
	}
}

func participationToDomain(p sqlc_generated.Participation) entities.Participation {
	return entities.Participation{
		ID:                  uint(p.ID),
		EventID:             uint(p.EventID),
		UserID:              p.UserID,
		Status:              domain.ParticipationStatus(p.Status),
		OrgApproved:         p.OrgApproved,
		PresenceConfirmed:   p.PresenceConfirmed,
		PresenceConfirmedAt: pgtypeTimestamptzToTime(p.PresenceConfirmedAt),
		CreatedAt:           pgtypeTimestamptzToTime(p.CreatedAt),
		UpdatedAt:           pgtypeTimestamptzToTime(p.UpdatedAt),
	}
}
