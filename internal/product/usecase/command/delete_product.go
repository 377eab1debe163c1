package command

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/product/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ProductID uint
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command. The hosted image is the
// client's to clean up; the API only ever stored its URL and public id.
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(cmd.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product %d", cmd.ProductID)
		}
		return nil, err
	}

	if err := h.repo.Delete(cmd.ProductID); err != nil {
		return nil, err
	}

	return product, nil
}
