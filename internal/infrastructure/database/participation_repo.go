package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/infrastructure/database/sqlc_generated"
	"tablemate/internal/ports/output"
)

const uniqueViolation = "23505"

var _ output.ParticipationRepository = (*ParticipationRepository)(nil)

// ParticipationRepository implements output.ParticipationRepository using sqlc + pgx.
type ParticipationRepository struct {
	q *sqlc_generated.Queries
}

// NewParticipationRepository creates a ParticipationRepository.
func NewParticipationRepository(q *sqlc_generated.Queries) *ParticipationRepository {
	return &ParticipationRepository{q: q}
}

func (r *ParticipationRepository) Create(ctx context.Context, participation *entities.Participation) error {
	if participation.Status == "" {
		participation.Status = domain.ParticipationPending
	}
	row, err := r.q.CreateParticipation(ctx, sqlc_generated.CreateParticipationParams{
		EventID:     int64(participation.EventID),
		UserID:      participation.UserID,
		Status:      string(participation.Status),
		OrgApproved: participation.OrgApproved,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrParticipationExists
		}
		return fmt.Errorf("create participation: %w", err)
	}
	participation.ID = uint(row.ID)
	participation.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
	participation.UpdatedAt = pgtypeTimestamptzToTime(row.UpdatedAt)
	return nil
}

func (r *ParticipationRepository) FindByID(ctx context.Context, id uint) (*entities.Participation, error) {
	row, err := r.q.GetParticipationByID(ctx, int64(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrParticipationNotFound
		}
		return nil, fmt.Errorf("get participation by id: %w", err)
	}
	p := participationToDomain(row)
	return &p, nil
}

func (r *ParticipationRepository) FindByEventID(ctx context.Context, eventID uint) ([]entities.Participation, error) {
	rows, err := r.q.GetParticipationsByEventID(ctx, int64(eventID))
	if err != nil {
		return nil, fmt.Errorf("get participations by event id: %w", err)
	}
	out := make([]entities.Participation, len(rows))
	for i := range rows {
		out[i] = participationToDomain(rows[i])
	}
	return out, nil
}

func (r *ParticipationRepository) FindByEventIDAndUserID(ctx context.Context, eventID uint, userID string) (*entities.Participation, error) {
	row, err := r.q.GetActiveParticipationByEventIDAndUserID(ctx, sqlc_generated.GetActiveParticipationByEventIDAndUserIDParams{
		EventID: int64(eventID),
		UserID:  userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrParticipationNotFound
		}
		return nil, fmt.Errorf("get participation by event id and user id: %w", err)
	}
	p := participationToDomain(row)
	return &p, nil
}

func (r *ParticipationRepository) UpdateStatus(ctx context.Context, id uint, expected, next domain.ParticipationStatus) (bool, error) {
	affected, err := r.q.UpdateParticipationStatus(ctx, sqlc_generated.UpdateParticipationStatusParams{
		NewStatus:      string(next),
		ID:             int64(id),
		ExpectedStatus: string(expected),
	})
	if err != nil {
		return false, fmt.Errorf("update participation status: %w", err)
	}
	return affected == 1, nil
}

func (r *ParticipationRepository) ConfirmPresence(ctx context.Context, id uint, at time.Time) (bool, error) {
	affected, err := r.q.ConfirmParticipationPresence(ctx, sqlc_generated.ConfirmParticipationPresenceParams{
		ID:                  int64(id),
		PresenceConfirmedAt: timeToPgtypeTimestamptz(at),
	})
	if err != nil {
		return false, fmt.Errorf("confirm participation presence: %w", err)
	}
	return affected == 1, nil
}

func (r *ParticipationRepository) CountByEventIDAndStatus(ctx context.Context, eventID uint, status domain.ParticipationStatus) (int64, error) {
	count, err := r.q.CountParticipationsByEventIDAndStatus(ctx, sqlc_generated.CountParticipationsByEventIDAndStatusParams{
		EventID: int64(eventID),
		Status:  string(status),
	})
	if err != nil {
		return 0, fmt.Errorf("count participations: %w", err)
	}
	return count, nil
}
