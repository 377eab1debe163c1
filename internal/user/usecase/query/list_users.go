package query

import "github.com/kipharma/pharmacy-platform/internal/user/domain"

// ListUsersQuery represents the query to list users
type ListUsersQuery struct {
	Filter domain.Filter
}

// ListUsersHandler handles list users queries
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(q ListUsersQuery) ([]domain.User, error) {
	return h.repo.FindAll(q.Filter)
}
