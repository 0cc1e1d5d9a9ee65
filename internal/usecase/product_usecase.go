package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput defines the data required to add a catalog item.
type CreateProductInput struct {
	Name            string
	Description     string
	RichDescription string
	Image           string
	Brand           string
	Category        string
	Price           float64
	CountInStock    int
	IsFeatured      bool
}

// UpdateProductInput carries a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Name            *string
	Description     *string
	RichDescription *string
	Image           *string
	Brand           *string
	Category        *string
	Price           *float64
	CountInStock    *int
	IsFeatured      *bool
}

// ListProductsInput selects and slices the catalog listing.
type ListProductsInput struct {
	Categories []string
	Page       int
	PageSize   int
}

// ListProductsOutput is one page of the catalog plus pagination metadata.
type ListProductsOutput struct {
	Products []*entity.Product
	Page     int
	PageSize int
	Total    int64
}

// RateProductInput folds one rating into a product's running average.
type RateProductInput struct {
	ProductID uuid.UUID
	Rating    float64
}

// ProductUsecase defines the interface for catalog operations.
type ProductUsecase interface {
	Create(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	List(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	Featured(ctx context.Context, limit int) ([]*entity.Product, error)
	Rate(ctx context.Context, input *RateProductInput) (*entity.Product, error)
}
