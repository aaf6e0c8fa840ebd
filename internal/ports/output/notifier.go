//go:generate go run go.uber.org/mock/mockgen -source=notifier.go -destination=../../mocks/mock_notifier.go -package=mocks
package output

import (
	"context"

	"tablemate/internal/domain/entities"
)

// Notifier is told about every persisted transition. It decides on its own
// whether the change is worth a message.
type Notifier interface {
	NotifyTransition(ctx context.Context, t entities.Transition) error
}
