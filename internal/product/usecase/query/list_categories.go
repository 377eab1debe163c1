package query

import "github.com/kipharma/pharmacy-platform/internal/product/domain"

// ListCategoriesHandler returns the distinct categories of active products
type ListCategoriesHandler struct {
	repo domain.ProductRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.ProductRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle() ([]string, error) {
	return h.repo.Categories()
}
