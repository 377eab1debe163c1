package query

import (
	"context"

	"github.com/kipharma/pharmacy-platform/internal/notification/domain"
)

// ListNotificationsQuery lists the notifications visible to the caller
type ListNotificationsQuery struct {
	Scope  domain.Scope
	Filter domain.ListFilter
}

// ListNotificationsHandler handles list notifications queries
type ListNotificationsHandler struct {
	repo domain.NotificationRepository
}

// NewListNotificationsHandler creates a new list notifications handler
func NewListNotificationsHandler(repo domain.NotificationRepository) *ListNotificationsHandler {
	return &ListNotificationsHandler{repo: repo}
}

// Handle executes the list notifications query. The unread count is
// computed over the full visible set, not the filtered page.
func (h *ListNotificationsHandler) Handle(ctx context.Context, q ListNotificationsQuery) (*domain.ListResult, error) {
	notifications, err := h.repo.FindVisible(q.Scope, q.Filter)
	if err != nil {
		return nil, err
	}

	unread, err := h.repo.CountUnread(q.Scope)
	if err != nil {
		return nil, err
	}

	return &domain.ListResult{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}
