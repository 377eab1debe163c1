package command

import (
	"context"
	"time"

	"github.com/kipharma/pharmacy-platform/internal/product/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
)

// TracedCreator is implemented by repositories that record a span on
// product creation
type TracedCreator interface {
	CreateWithContext(ctx context.Context, product *domain.Product) error
}

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name              string
	Description       string
	Category          string
	Price             float64
	Stock             int
	LowStockThreshold int
	BranchID          uint
	Image             string
	ImagePublicID     string
	SKU               string
	Manufacturer      string
	ExpiryDate        *time.Time
	Featured          bool
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, apperrors.Validation("product name is required")
	}
	if cmd.Category == "" {
		return nil, apperrors.Validation("category is required")
	}
	if cmd.Price < 0 {
		return nil, apperrors.Validation("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, apperrors.Validation("stock cannot be negative")
	}

	threshold := cmd.LowStockThreshold
	if threshold <= 0 {
		threshold = domain.DefaultLowStockThreshold
	}

	product := &domain.Product{
		Name:              cmd.Name,
		Description:       cmd.Description,
		Category:          cmd.Category,
		Price:             cmd.Price,
		Stock:             cmd.Stock,
		LowStockThreshold: threshold,
		BranchID:          cmd.BranchID,
		Image:             cmd.Image,
		ImagePublicID:     cmd.ImagePublicID,
		SKU:               cmd.SKU,
		Manufacturer:      cmd.Manufacturer,
		ExpiryDate:        cmd.ExpiryDate,
		Featured:          cmd.Featured,
		IsActive:          true,
	}
	product.Refresh()

	var err error
	if traced, ok := h.repo.(TracedCreator); ok {
		err = traced.CreateWithContext(ctx, product)
	} else {
		err = h.repo.Create(product)
	}
	if err != nil {
		return nil, err
	}

	return product, nil
}
