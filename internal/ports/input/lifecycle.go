package input

import (
	"context"

	"tablemate/internal/application"
	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
	"tablemate/internal/domain/lifecycle"
)

// LifecycleUseCase is what UI code uses to read and drive an event status.
type LifecycleUseCase interface {
	Watch(ctx context.Context, eventID uint) error
	Unwatch(eventID uint)
	Status(eventID uint) (domain.Status, bool)
	Confirm(ctx context.Context, eventID uint, actorID string) (application.Result, error)
	Cancel(ctx context.Context, eventID uint, actorID, reason string) (application.Result, error)
	Subscribe(fn func(application.StatusUpdate))
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, draft application.EventDraft) (*entities.Event, error)
	GetEventByID(ctx context.Context, id uint) (*entities.Event, error)
	GetEventsByCreatorID(ctx context.Context, creatorID string) ([]entities.Event, error)
	DescribeEvent(ctx context.Context, id uint) (*application.EventView, error)
}

type ParticipationUseCase interface {
	Apply(ctx context.Context, eventID uint, userID string) (*entities.Participation, error)
	Approve(ctx context.Context, participationID uint, creatorID string) (*entities.Participation, error)
	Reject(ctx context.Context, participationID uint, creatorID string) (*entities.Participation, error)
	ConfirmPresence(ctx context.Context, eventID uint, userID string) (*entities.Participation, error)
	ChatAvailability(ctx context.Context, eventID uint, userID string) (lifecycle.Chat, error)
	Roster(ctx context.Context, eventID uint) (*application.Roster, error)
}

var (
	_ LifecycleUseCase     = (*application.Scheduler)(nil)
	_ EventUseCase         = (*application.EventService)(nil)
	_ ParticipationUseCase = (*application.ParticipationService)(nil)
)
