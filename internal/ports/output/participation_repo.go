//go:generate go run go.uber.org/mock/mockgen -source=participation_repo.go -destination=../../mocks/mock_participation_repo.go -package=mocks
package output

import (
	"context"
	"time"

	"tablemate/internal/domain"
	"tablemate/internal/domain/entities"
)

type ParticipationRepository interface {
	// Create returns domain.ErrParticipationExists when the user already has a
	// non-rejected participation for the event.
	Create(ctx context.Context, participation *entities.Participation) error
	FindByID(ctx context.Context, id uint) (*entities.Participation, error)
	FindByEventID(ctx context.Context, eventID uint) ([]entities.Participation, error)
	// FindByEventIDAndUserID returns the non-rejected participation of the
	// user, or domain.ErrParticipationNotFound.
	FindByEventIDAndUserID(ctx context.Context, eventID uint, userID string) (*entities.Participation, error)
	UpdateStatus(ctx context.Context, id uint, expected, next domain.ParticipationStatus) (bool, error)
	// ConfirmPresence marks presence only while the owning event is confirmed
	// or in progress and the participation is approved.
	ConfirmPresence(ctx context.Context, id uint, at time.Time) (bool, error)
	CountByEventIDAndStatus(ctx context.Context, eventID uint, status domain.ParticipationStatus) (int64, error)
}
