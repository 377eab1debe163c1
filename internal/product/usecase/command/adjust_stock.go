package command

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/product/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

// Adjustment directions for relative stock changes
const (
	AdjustmentIn  = "in"
	AdjustmentOut = "out"
)

// TracedRepository is implemented by repositories that record spans on
// the read and write of a stock mutation
type TracedRepository interface {
	FindByIDWithContext(ctx context.Context, id uint) (*domain.Product, error)
	UpdateStockWithContext(ctx context.Context, id uint, stock int, status string) error
}

// AdjustStockCommand represents a stock mutation: either an absolute set
// (Stock) or a relative adjustment (Adjustment + Type). When both are
// present the adjustment takes precedence.
type AdjustStockCommand struct {
	ProductID  uint
	Stock      *int
	Adjustment *int
	Type       string

	// Acting principal; a Manager may only touch their own branch
	ActorRole     string
	ActorBranchID uint
}

// AdjustStockHandler handles stock adjustment commands
type AdjustStockHandler struct {
	repo domain.ProductRepository
}

// NewAdjustStockHandler creates a new adjust stock handler
func NewAdjustStockHandler(repo domain.ProductRepository) *AdjustStockHandler {
	return &AdjustStockHandler{repo: repo}
}

func (h *AdjustStockHandler) find(ctx context.Context, id uint) (*domain.Product, error) {
	if traced, ok := h.repo.(TracedRepository); ok {
		return traced.FindByIDWithContext(ctx, id)
	}
	return h.repo.FindByID(id)
}

func (h *AdjustStockHandler) writeStock(ctx context.Context, id uint, stock int, status string) error {
	if traced, ok := h.repo.(TracedRepository); ok {
		return traced.UpdateStockWithContext(ctx, id, stock, status)
	}
	return h.repo.UpdateStock(id, stock, status)
}

// Handle applies the stock mutation and recomputes the derived status.
// Outgoing adjustments clamp at zero, they never error. Raising a low
// stock alert is a separate, caller initiated action.
func (h *AdjustStockHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (*domain.Product, error) {
	if cmd.ProductID == 0 {
		return nil, apperrors.Validation("invalid product id")
	}

	product, err := h.find(ctx, cmd.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product %d", cmd.ProductID)
		}
		return nil, err
	}

	if cmd.ActorRole == auth.RoleManager && product.BranchID != cmd.ActorBranchID {
		return nil, apperrors.Forbidden("product %d belongs to another branch", cmd.ProductID)
	}

	switch {
	case cmd.Adjustment != nil:
		if *cmd.Adjustment < 0 {
			return nil, apperrors.Validation("adjustment cannot be negative")
		}
		switch cmd.Type {
		case AdjustmentIn:
			product.Stock += *cmd.Adjustment
		case AdjustmentOut:
			product.Stock -= *cmd.Adjustment
			if product.Stock < 0 {
				product.Stock = 0
			}
		default:
			return nil, apperrors.Validation("adjustment type must be 'in' or 'out'")
		}
	case cmd.Stock != nil:
		if *cmd.Stock < 0 {
			return nil, apperrors.Validation("stock cannot be negative")
		}
		product.Stock = *cmd.Stock
	default:
		return nil, apperrors.Validation("either stock or adjustment is required")
	}

	product.Refresh()

	if err := h.writeStock(ctx, product.ID, product.Stock, product.Status); err != nil {
		return nil, err
	}

	return product, nil
}
