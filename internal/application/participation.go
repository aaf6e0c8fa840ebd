package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/domain/lifecycle"
	"tablemate/internal/ports/output"
)

type ParticipationService struct {
	participationRepo output.ParticipationRepository
	eventRepo         output.EventRepository
	clock             output.Clock
}

func NewParticipationService(
	participationRepo output.ParticipationRepository,
	eventRepo output.EventRepository,
	clock output.Clock,
) *ParticipationService {
	return &ParticipationService{
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
		clock:             clock,
	}
}

// Apply creates a pending participation for userID.
func (s *ParticipationService) Apply(ctx context.Context, eventID uint, userID string) (*entities.Participation, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsCreator(userID) {
		return nil, domain.ErrCreatorCannotApply
	}
	if !lifecycle.ActionsFor(event.Status).IsActive {
		return nil, domain.ErrEventNotActive
	}
	existing, err := s.participationRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil && !errors.Is(err, domain.ErrParticipationNotFound) {
		return nil, fmt.Errorf("find participation: %w", err)
	}
	if existing != nil {
		return existing, domain.ErrParticipationExists
	}
	participation := &entities.Participation{
		EventID: eventID,
		UserID:  userID,
		Status:  domain.ParticipationPending,
	}
	if err := s.participationRepo.Create(ctx, participation); err != nil {
		return nil, fmt.Errorf("create participation: %w", err)
	}
	return participation, nil
}

// Approve moves a pending participation to approved. Only the creator may.
func (s *ParticipationService) Approve(ctx context.Context, participationID uint, creatorID string) (*entities.Participation, error) {
	return s.decide(ctx, participationID, creatorID, domain.ParticipationApproved)
}

// Reject moves a pending participation to rejected. Only the creator may.
func (s *ParticipationService) Reject(ctx context.Context, participationID uint, creatorID string) (*entities.Participation, error) {
	return s.decide(ctx, participationID, creatorID, domain.ParticipationRejected)
}

func (s *ParticipationService) decide(ctx context.Context, participationID uint, creatorID string, next domain.ParticipationStatus) (*entities.Participation, error) {
	participation, err := s.participationRepo.FindByID(ctx, participationID)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, participation.EventID)
	if err != nil {
		return nil, err
	}
	if !event.IsCreator(creatorID) {
		return nil, domain.ErrNotAuthorized
	}
	if participation.Status != domain.ParticipationPending {
		return nil, domain.ErrParticipationNotPending
	}
	applied, err := s.participationRepo.UpdateStatus(ctx, participationID, domain.ParticipationPending, next)
	if err != nil {
		return nil, fmt.Errorf("update participation: %w", err)
	}
	if !applied {
		return nil, domain.ErrParticipationNotPending
	}
	participation.Status = next
	return participation, nil
}

// ConfirmPresence records that userID showed up. Storage re-checks the event
// status so a concurrent cancellation cannot slip in between.
func (s *ParticipationService) ConfirmPresence(ctx context.Context, eventID uint, userID string) (*entities.Participation, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.ActionsFor(event.Status).CanConfirmPresence {
		return nil, domain.ErrPresenceNotAllowed
	}
	participation, err := s.participationRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if participation.Status != domain.ParticipationApproved {
		return nil, domain.ErrPresenceNotAllowed
	}
	if participation.PresenceConfirmed {
		return participation, nil
	}
	at := s.clock.Now()
	applied, err := s.participationRepo.ConfirmPresence(ctx, participation.ID, at)
	if err != nil {
		return nil, fmt.Errorf("confirm presence: %w", err)
	}
	if !applied {
		return nil, domain.ErrPresenceNotAllowed
	}
	participation.PresenceConfirmed = true
	participation.PresenceConfirmedAt = at
	return participation, nil
}

// ChatAvailability answers whether userID can use the chat of eventID.
func (s *ParticipationService) ChatAvailability(ctx context.Context, eventID uint, userID string) (lifecycle.Chat, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return lifecycle.Chat{}, err
	}
	if event.IsCreator(userID) {
		return lifecycle.ChatAvailability(*event, nil, true), nil
	}
	participation, err := s.participationRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrParticipationNotFound) {
			return lifecycle.Chat{}, fmt.Errorf("find participation: %w", err)
		}
		participation = nil
	}
	return lifecycle.ChatAvailability(*event, participation, false), nil
}

// Roster splits the participations of an event by approval state.
type Roster struct {
	Approved []entities.Participation
	Pending  []entities.Participation
	Present  int
}

func (s *ParticipationService) Roster(ctx context.Context, eventID uint) (*Roster, error) {
	participations, err := s.participationRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	byStatus := lo.GroupBy(participations, func(p entities.Participation) domain.ParticipationStatus {
		return p.Status
	})
	return &Roster{
		Approved: byStatus[domain.ParticipationApproved],
		Pending:  byStatus[domain.ParticipationPending],
		Present: lo.CountBy(participations, func(p entities.Participation) bool {
			return p.PresenceConfirmed
		}),
	}, nil
}
