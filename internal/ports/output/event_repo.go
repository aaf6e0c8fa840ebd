//go:generate go run go.uber.org/mock/mockgen -source=event_repo.go -destination=../../mocks/mock_event_repo.go -package=mocks
package output

import (
	"context"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	// FindByID returns domain.ErrEventNotFound when no event has this id.
	FindByID(ctx context.Context, id uint) (*entities.Event, error)
	FindByCreatorID(ctx context.Context, creatorID string) ([]entities.Event, error)
	// FindActive lists events that are neither completed nor cancelled.
	FindActive(ctx context.Context) ([]entities.Event, error)
	// ConditionalUpdateStatus applies change only if the stored status still
	// equals expected. current is the stored record after the call, whether
	// the update applied or not.
	ConditionalUpdateStatus(ctx context.Context, id uint, expected domain.Status, change entities.StatusChange) (applied bool, current *entities.Event, err error)
}
