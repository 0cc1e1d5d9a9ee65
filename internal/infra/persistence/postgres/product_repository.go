package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements the repository.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return repo.findByID(repo.db.WithContext(ctx), id)
}

// FindByIDForUpdate retrieves a product under SELECT ... FOR UPDATE. Under
// READ COMMITTED a plain read lets two transactions compute from the same
// snapshot and the later write clobber the earlier one; the row lock makes
// the second reader wait and see the committed values.
func (repo *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return repo.findByID(
		repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		id,
	)
}

func (repo *productRepository) findByID(query *gorm.DB, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := query.
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// List retrieves products matching the filter, newest first.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter, page repository.ProductPage) ([]*entity.Product, error) {
	var productMs []*model.ProductModel

	query := applyProductFilter(repo.db.WithContext(ctx), filter).
		Order("created_at DESC")

	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}

	if err := query.Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for _, productM := range productMs {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// Count returns the number of products matching the filter.
func (repo *productRepository) Count(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	var count int64

	if err := applyProductFilter(repo.db.WithContext(ctx).Model(&model.ProductModel{}), filter).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	return count, nil
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrProductCreationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update persists changes to an existing product.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	// Save with a full model writes zero values too, which partial updates rely on.
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(productM)
	if result.Error != nil {
		if isNotNullConstraintViolation(result.Error) {
			return domainerrors.ErrProductUpdateFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product by ID.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func applyProductFilter(query *gorm.DB, filter repository.ProductFilter) *gorm.DB {
	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	return query
}

// --- Mapper functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:              data.ID,
		Name:            data.Name,
		Description:     data.Description,
		RichDescription: data.RichDescription,
		Image:           data.Image,
		Brand:           data.Brand,
		Category:        data.Category,
		Price:           data.Price,
		CountInStock:    data.CountInStock,
		Rating:          data.Rating,
		NumReviews:      data.NumReviews,
		IsFeatured:      data.IsFeatured,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:              data.ID,
		Name:            data.Name,
		Description:     data.Description,
		RichDescription: data.RichDescription,
		Image:           data.Image,
		Brand:           data.Brand,
		Category:        data.Category,
		Price:           data.Price,
		CountInStock:    data.CountInStock,
		Rating:          data.Rating,
		NumReviews:      data.NumReviews,
		IsFeatured:      data.IsFeatured,
	}
}
