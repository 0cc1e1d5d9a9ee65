package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows List and Count results. Zero values mean "no filter".
type ProductFilter struct {
	Categories []string // Match any of these categories when non-empty.
	Featured   *bool    // Filter on the featured flag when set.
}

// ProductPage describes the requested slice of a listing.
type ProductPage struct {
	Offset int
	Limit  int
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDForUpdate retrieves a product and takes a row lock on it, so a
	// read-modify-write cycle cannot race a concurrent writer. Only valid
	// inside a transaction; the lock is held until that transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List retrieves products matching the filter, ordered by creation time
	// descending, sliced by the page.
	List(ctx context.Context, filter ProductFilter, page ProductPage) ([]*entity.Product, error)

	// Count returns the number of products matching the filter.
	Count(ctx context.Context, filter ProductFilter) (int64, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update persists changes to an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product. Returns ErrProductNotFound when no row matched.
	Delete(ctx context.Context, id uuid.UUID) error
}
