package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/infrastructure/database/sqlc_generated"
	"tablemate/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	q *sqlc_generated.Queries
}

func NewEventRepository(q *sqlc_generated.Queries) *EventRepository {
	return &EventRepository{q: q}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	if event.Status == "" {
		event.Status = domain.StatusOpen
	}
	row, err := r.q.CreateEvent(ctx, sqlc_generated.CreateEventParams{
		CreatorID:          event.CreatorID,
		Title:              event.Title,
		Kind:               string(event.Kind),
		ScheduledStart:     timeToPgtypeTimestamptz(event.ScheduledStart),
		ScheduledEnd:       timeToPgtypeTimestamptz(event.ScheduledEnd),
		EvaluationDeadline: timeToPgtypeTimestamptz(event.EvaluationDeadline),
		MinParticipants:    int32(event.MinParticipants),
		Status:             string(event.Status),
		StatusChangedAt:    timeToPgtypeTimestamptz(event.StatusChangedAt),
	})
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.ID = uint(row.ID)
	event.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
	event.UpdatedAt = pgtypeTimestamptzToTime(row.UpdatedAt)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*entities.Event, error) {
	row, err := r.q.GetEventByID(ctx, int64(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	e := eventToDomain(row)
	if err := r.attachConfirmedCount(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) FindByCreatorID(ctx context.Context, creatorID string) ([]entities.Event, error) {
	rows, err := r.q.GetEventsByCreatorID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("get events by creator id: %w", err)
	}
	return r.toDomain(ctx, rows)
}

func (r *EventRepository) FindActive(ctx context.Context) ([]entities.Event, error) {
	rows, err := r.q.GetActiveEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("get active events: %w", err)
	}
	return r.toDomain(ctx, rows)
}

func (r *EventRepository) ConditionalUpdateStatus(ctx context.Context, id uint, expected domain.Status, change entities.StatusChange) (bool, *entities.Event, error) {
	var reason string
	if change.Status == domain.StatusCancelled {
		reason = change.CancelReason
	}
	affected, err := r.q.ConditionalUpdateEventStatus(ctx, sqlc_generated.ConditionalUpdateEventStatusParams{
		NewStatus:       string(change.Status),
		StatusChangedAt: timeToPgtypeTimestamptz(change.ChangedAt),
		CancelReason:    textOrNull(reason),
		ID:              int64(id),
		ExpectedStatus:  string(expected),
	})
	if err != nil {
		return false, nil, fmt.Errorf("conditional update event status: %w", err)
	}
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return false, nil, err
	}
	return affected == 1, current, nil
}

func (r *EventRepository) attachConfirmedCount(ctx context.Context, e *entities.Event) error {
	count, err := r.q.CountParticipationsByEventIDAndStatus(ctx, sqlc_generated.CountParticipationsByEventIDAndStatusParams{
		EventID: int64(e.ID),
		Status:  string(domain.ParticipationApproved),
	})
	if err != nil {
		return fmt.Errorf("count approved participations: %w", err)
	}
	e.ConfirmedParticipantCount = int(count)
	return nil
}

func (r *EventRepository) toDomain(ctx context.Context, rows []sqlc_generated.Event) ([]entities.Event, error) {
	out := make([]entities.Event, len(rows))
	for i := range rows {
		out[i] = eventToDomain(rows[i])
		if err := r.attachConfirmedCount(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
