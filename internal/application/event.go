package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/domain/lifecycle"
	"tablemate/internal/ports/output"
)

// EventDraft is the creator's input for a new event.
type EventDraft struct {
	CreatorID          string           `validate:"required"`
	Title              string           `validate:"required,max=120"`
	Kind               domain.EventKind `validate:"omitempty,oneof=social institutional"`
	ScheduledStart     time.Time        `validate:"required"`
	ScheduledEnd       time.Time        `validate:"required"`
	EvaluationDeadline time.Time        `validate:"required"`
	MinParticipants    int              `validate:"gte=1"`
}

// Tracker is told about new events so time-based transitions get scheduled.
type Tracker interface {
	Track(e entities.Event)
}

type EventService struct {
	eventRepo         output.EventRepository
	participationRepo output.ParticipationRepository
	clock             output.Clock
	tracker           Tracker
	validate          *validator.Validate
}

func NewEventService(
	eventRepo output.EventRepository,
	participationRepo output.ParticipationRepository,
	clock output.Clock,
	tracker Tracker,
) *EventService {
	return &EventService{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		clock:             clock,
		tracker:           tracker,
		validate:          validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateEvent stores a new open event.
func (s *EventService) CreateEvent(ctx context.Context, draft EventDraft) (*entities.Event, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Kind == "" {
		draft.Kind = domain.KindSocial
	}
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidEvent, err)
	}
	now := s.clock.Now()
	event := &entities.Event{
		CreatorID:          draft.CreatorID,
		Title:              draft.Title,
		Kind:               draft.Kind,
		ScheduledStart:     draft.ScheduledStart,
		ScheduledEnd:       draft.ScheduledEnd,
		EvaluationDeadline: draft.EvaluationDeadline,
		MinParticipants:    draft.MinParticipants,
		Status:             domain.StatusOpen,
		StatusChangedAt:    now,
	}
	if !event.ValidSchedule() {
		return nil, domain.ErrInvalidSchedule
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if s.tracker != nil {
		s.tracker.Track(*event)
	}
	return event, nil
}

func (s *EventService) GetEventByID(ctx context.Context, id uint) (*entities.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

func (s *EventService) GetEventsByCreatorID(ctx context.Context, creatorID string) ([]entities.Event, error) {
	return s.eventRepo.FindByCreatorID(ctx, creatorID)
}

// EventView is an event with everything a badge or action bar needs.
type EventView struct {
	Event        entities.Event
	Derived      domain.Status // what the status should be right now
	Actions      lifecycle.Actions
	MeetsMinimum bool
}

// DescribeEvent reads the event and derives its capabilities from the
// persisted status. Derived may be ahead of the persisted status until a
// scheduler catches up; capabilities never use it.
func (s *EventService) DescribeEvent(ctx context.Context, id uint) (*EventView, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &EventView{
		Event:        *event,
		Derived:      lifecycle.Calculate(*event, s.clock.Now()),
		Actions:      lifecycle.ActionsFor(event.Status),
		MeetsMinimum: lifecycle.MeetsMinimum(*event),
	}, nil
}
