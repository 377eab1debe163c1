package command

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/product/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
)

// UpdateProductCommand represents the command to update a product.
// Nil pointers leave the corresponding field untouched. Status is not
// accepted: it is always derived.
type UpdateProductCommand struct {
	ProductID         uint
	Name              *string
	Description       *string
	Category          *string
	Price             *float64
	Stock             *int
	LowStockThreshold *int
	BranchID          *uint
	Image             *string
	ImagePublicID     *string
	SKU               *string
	Manufacturer      *string
	ExpiryDate        *time.Time
	Featured          *bool
	IsActive          *bool
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(cmd.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product %d", cmd.ProductID)
		}
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, apperrors.Validation("product name cannot be empty")
		}
		product.Name = *cmd.Name
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.Category != nil {
		product.Category = *cmd.Category
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, apperrors.Validation("price cannot be negative")
		}
		product.Price = *cmd.Price
	}
	if cmd.Stock != nil {
		if *cmd.Stock < 0 {
			return nil, apperrors.Validation("stock cannot be negative")
		}
		product.Stock = *cmd.Stock
	}
	if cmd.LowStockThreshold != nil {
		if *cmd.LowStockThreshold < 0 {
			return nil, apperrors.Validation("low stock threshold cannot be negative")
		}
		product.LowStockThreshold = *cmd.LowStockThreshold
	}
	if cmd.BranchID != nil {
		product.BranchID = *cmd.BranchID
	}
	if cmd.Image != nil {
		product.Image = *cmd.Image
	}
	if cmd.ImagePublicID != nil {
		product.ImagePublicID = *cmd.ImagePublicID
	}
	if cmd.SKU != nil {
		product.SKU = *cmd.SKU
	}
	if cmd.Manufacturer != nil {
		product.Manufacturer = *cmd.Manufacturer
	}
	if cmd.ExpiryDate != nil {
		product.ExpiryDate = cmd.ExpiryDate
	}
	if cmd.Featured != nil {
		product.Featured = *cmd.Featured
	}
	if cmd.IsActive != nil {
		product.IsActive = *cmd.IsActive
	}

	// Stock or threshold changes move the derived status with them
	product.Refresh()

	if err := h.repo.Update(product); err != nil {
		return nil, err
	}

	return product, nil
}
