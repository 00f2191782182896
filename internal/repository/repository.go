package repository

import "context"

// Repository defines the basic CRUD operations for any entity type.
// This follows a similar pattern to Spring Data's Repository interface.
type Repository[T any, ID comparable] interface {
	// Save creates or updates an entity
	Save(ctx context.Context, entity T) (T, error)

	// FindByID retrieves an entity by its ID
	// Returns ErrNotFound if the entity doesn't exist
	FindByID(ctx context.Context, id ID) (T, error)

	// FindAll retrieves all entities
	FindAll(ctx context.Context) ([]T, error)

	// DeleteByID deletes an entity by its ID
	// Deleting a missing entity is not an error
	DeleteByID(ctx context.Context, id ID) error

	// ExistsByID checks if an entity exists by its ID
	ExistsByID(ctx context.Context, id ID) (bool, error)
}

// PagingRepository adds paginated reads to Repository
type PagingRepository[T any, ID comparable] interface {
	Repository[T, ID]

	// FindPage retrieves one page of entities
	// Returns ErrInvalidSort if a sort property is not sortable
	FindPage(ctx context.Context, pageable Pageable) (Page[T], error)
}
