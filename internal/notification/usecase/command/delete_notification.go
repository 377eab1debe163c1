package command

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/notification/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
)

// DeleteNotificationCommand removes a notification
type DeleteNotificationCommand struct {
	NotificationID uint
	Scope          domain.Scope
}

// DeleteNotificationHandler handles notification deletion
type DeleteNotificationHandler struct {
	repo domain.NotificationRepository
}

// NewDeleteNotificationHandler creates a new delete notification handler
func NewDeleteNotificationHandler(repo domain.NotificationRepository) *DeleteNotificationHandler {
	return &DeleteNotificationHandler{repo: repo}
}

// Handle executes the delete notification command
func (h *DeleteNotificationHandler) Handle(ctx context.Context, cmd DeleteNotificationCommand) error {
	n, err := h.repo.FindByID(cmd.NotificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("notification %d", cmd.NotificationID)
		}
		return err
	}

	if !cmd.Scope.Matches(n) {
		return apperrors.Forbidden("notification %d is not visible to you", cmd.NotificationID)
	}

	return h.repo.Delete(n.ID)
}
