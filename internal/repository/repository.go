// Package repository defines the storage contract used by the catalog controllers
// and the decorators that can be stacked on top of any implementation.
package repository

import (
	"context"
)

// Repository is a generic storage abstraction for entities of type T.
// It decouples the controllers from the persistence engine.
type Repository[T any] interface {
	// GetAll returns every stored entity.
	// Returns an empty slice if nothing is stored.
	GetAll(ctx context.Context) ([]T, error)

	// GetByID retrieves a single entity by its identifier.
	// Returns ErrNotFound if no entity exists with the given ID.
	GetByID(ctx context.Context, id int64) (*T, error)

	// Create stores a new entity and writes the assigned identifier back into it.
	Create(ctx context.Context, entity *T) error

	// Update replaces the stored entity that has the same identifier.
	// It is a no-op when no such entity exists.
	Update(ctx context.Context, entity *T) error

	// Delete removes the given entity.
	Delete(ctx context.Context, entity *T) error
}
