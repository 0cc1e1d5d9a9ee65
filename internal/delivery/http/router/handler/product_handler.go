package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	RichDescription string  `json:"richDescription"`
	Image           string  `json:"image"`
	Brand           string  `json:"brand"`
	Category        string  `json:"category"`
	Price           float64 `json:"price" validate:"min=0"`
	CountInStock    int     `json:"countInStock" validate:"min=0"`
	IsFeatured      bool    `json:"isFeatured"`
}

// UpdateProductRequest represents the request body for a partial product update.
type UpdateProductRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	RichDescription *string  `json:"richDescription,omitempty"`
	Image           *string  `json:"image,omitempty"`
	Brand           *string  `json:"brand,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	CountInStock    *int     `json:"countInStock,omitempty" validate:"omitempty,min=0"`
	IsFeatured      *bool    `json:"isFeatured,omitempty"`
}

// RateProductRequest represents the request body for rating a product.
type RateProductRequest struct {
	Rating float64 `json:"rating" validate:"required,min=1,max=5"`
}

// Create handles adding a new catalog item.
func (h *ProductHandler) Create(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	product, err := h.productUC.Create(c.Request().Context(), &usecase.CreateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		RichDescription: req.RichDescription,
		Image:           req.Image,
		Brand:           req.Brand,
		Category:        req.Category,
		Price:           req.Price,
		CountInStock:    req.CountInStock,
		IsFeatured:      req.IsFeatured,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "product created")
}

// Get handles fetching one product by ID.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	product, err := h.productUC.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// List handles the paginated, optionally category-filtered catalog listing.
func (h *ProductHandler) List(c echo.Context) error {
	input := &usecase.ListProductsInput{}

	if categories := c.QueryParam("categories"); categories != "" {
		for _, category := range strings.Split(categories, ",") {
			if category = strings.TrimSpace(category); category != "" {
				input.Categories = append(input.Categories, category)
			}
		}
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		input.Page = page
	}
	if pageSize, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil {
		input.PageSize = pageSize
	}

	output, err := h.productUC.List(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"items":    output.Products,
		"page":     output.Page,
		"pageSize": output.PageSize,
		"total":    output.Total,
	}, "")
}

// Update handles a partial update of an existing product.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	product, err := h.productUC.Update(c.Request().Context(), id, &usecase.UpdateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		RichDescription: req.RichDescription,
		Image:           req.Image,
		Brand:           req.Brand,
		Category:        req.Category,
		Price:           req.Price,
		CountInStock:    req.CountInStock,
		IsFeatured:      req.IsFeatured,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "product updated")
}

// Delete handles removing a product from the catalog.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	if err := h.productUC.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "product deleted")
}

// Count handles the catalog size endpoint.
func (h *ProductHandler) Count(c echo.Context) error {
	count, err := h.productUC.Count(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"count": count}, "")
}

// Featured handles listing up to :count featured products.
func (h *ProductHandler) Featured(c echo.Context) error {
	limit, err := strconv.Atoi(c.Param("count"))
	if err != nil || limit < 1 {
		return response.BadRequest(c, "VALIDATION_FAILED", "count must be a positive integer")
	}

	products, err := h.productUC.Featured(c.Request().Context(), limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// Rate handles folding a new rating into a product's running average.
func (h *ProductHandler) Rate(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}

	var req RateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	product, err := h.productUC.Rate(c.Request().Context(), &usecase.RateProductInput{
		ProductID: id,
		Rating:    req.Rating,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "rating recorded")
}

func parseProductID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid product id")
	}

	return id, nil
}
