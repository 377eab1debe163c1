package query

import "github.com/kipharma/pharmacy-platform/internal/product/domain"

// GetStatsHandler returns the stock status breakdown for the dashboard
type GetStatsHandler struct {
	repo domain.ProductRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the stats query
func (h *GetStatsHandler) Handle() (*domain.StatusCounts, error) {
	return h.repo.StatusCounts()
}
