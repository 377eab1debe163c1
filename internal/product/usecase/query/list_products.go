package query

import (
	"github.com/kipharma/pharmacy-platform/internal/product/domain"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Filter domain.Filter

	// Acting principal; Managers are scoped to their own branch
	ActorRole     string
	ActorBranchID uint
}

// ListProductsHandler handles list products queries
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(q ListProductsQuery) ([]domain.Product, error) {
	filter := q.Filter

	// A Manager only ever sees their own branch, whatever they asked for
	if q.ActorRole == auth.RoleManager && q.ActorBranchID != 0 {
		filter.BranchID = q.ActorBranchID
	}

	return h.repo.FindAll(filter)
}
