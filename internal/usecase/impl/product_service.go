package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	minRating = 1
	maxRating = 5
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// Create adds a new catalog item.
func (srv *productService) Create(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	if input.Name == "" || input.Description == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name and description are required")
	}
	if input.Price < 0 || input.CountInStock < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price and countInStock must not be negative")
	}

	product := &entity.Product{
		Name:            input.Name,
		Description:     input.Description,
		RichDescription: input.RichDescription,
		Image:           input.Image,
		Brand:           input.Brand,
		Category:        input.Category,
		Price:           input.Price,
		CountInStock:    input.CountInStock,
		IsFeatured:      input.IsFeatured,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.logger.Error("Failed to create product", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.logger.Info("Product created", slog.Any("productID", product.ID))

	return product, nil
}

// Get retrieves one product by ID.
func (srv *productService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("get product failed")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// List returns one page of the catalog, optionally filtered by category.
func (srv *productService) List(ctx context.Context, input *usecase.ListProductsInput) (*usecase.ListProductsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := repository.ProductFilter{Categories: input.Categories}

	total, err := srv.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}

	products, err := srv.productRepo.List(ctx, filter, repository.ProductPage{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return &usecase.ListProductsOutput{
		Products: products,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// Update applies a partial update to an existing product.
func (srv *productService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	var updated *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		// Locked read: the unchanged fields written back below must come
		// from the current row, not a snapshot a concurrent writer replaced.
		product, err := productRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("update product failed")
			}

			return errors.Wrap(err, "failed to find product for update")
		}

		applyProductUpdate(product, input)

		if product.Price < 0 || product.CountInStock < 0 {
			return domainerrors.ErrValidationFailed.WithDetails("price and countInStock must not be negative")
		}

		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to update product")
		}

		updated = product

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Debug("Product updated", slog.Any("productID", id))

	return updated, nil
}

// Delete removes a product from the catalog.
func (srv *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound.WrapMessage("delete product failed")
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.logger.Info("Product deleted", slog.Any("productID", id))

	return nil
}

// Count returns the total number of catalog items.
func (srv *productService) Count(ctx context.Context) (int64, error) {
	count, err := srv.productRepo.Count(ctx, repository.ProductFilter{})
	if err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	return count, nil
}

// Featured returns up to limit featured products.
func (srv *productService) Featured(ctx context.Context, limit int) ([]*entity.Product, error) {
	if limit < 1 {
		limit = defaultPageSize
	}

	featured := true
	products, err := srv.productRepo.List(ctx,
		repository.ProductFilter{Featured: &featured},
		repository.ProductPage{Limit: limit},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}

	return products, nil
}

// Rate folds one rating into the product's running average. The locked read
// and the write happen in one transaction so concurrent ratings serialize
// instead of losing updates.
func (srv *productService) Rate(ctx context.Context, input *usecase.RateProductInput) (*entity.Product, error) {
	if input.Rating < minRating || input.Rating > maxRating {
		return nil, domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
	}

	var rated *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		// Locked read: concurrent raters must each fold into the average the
		// previous rater committed, never into a shared stale snapshot.
		product, err := productRepo.FindByIDForUpdate(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("rate product failed")
			}

			return errors.Wrap(err, "failed to find product for rating")
		}

		product.ApplyRating(input.Rating)

		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to store product rating")
		}

		rated = product

		return nil
	})
	if err != nil {
		srv.logger.Warn("Failed to rate product", slog.Any("productID", input.ProductID), slog.Any("error", err))

		return nil, err
	}

	srv.logger.Debug("Product rated",
		slog.Any("productID", rated.ID),
		slog.Float64("rating", rated.Rating),
		slog.Int("numReviews", rated.NumReviews),
	)

	return rated, nil
}

func applyProductUpdate(product *entity.Product, input *usecase.UpdateProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.RichDescription != nil {
		product.RichDescription = *input.RichDescription
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.CountInStock != nil {
		product.CountInStock = *input.CountInStock
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
}
