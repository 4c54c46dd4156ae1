package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base interface for origin-store repositories.
// Origin records are created and deleted by their owning services, so the
// contract only covers reads and versioned write-backs.
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Save(ctx context.Context, entity *T) error
	// SaveWithLock persists the entity only if the stored version is the one
	// the entity was loaded with.
	SaveWithLock(ctx context.Context, entity *T) error
}
