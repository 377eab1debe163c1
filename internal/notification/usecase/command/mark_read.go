package command

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/notification/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
)

// MarkReadCommand marks a single notification as read
type MarkReadCommand struct {
	NotificationID uint
	Scope          domain.Scope
}

// MarkReadHandler handles mark read commands
type MarkReadHandler struct {
	repo domain.NotificationRepository
}

// NewMarkReadHandler creates a new mark read handler
func NewMarkReadHandler(repo domain.NotificationRepository) *MarkReadHandler {
	return &MarkReadHandler{repo: repo}
}

// Handle executes the mark read command. Marking an already read
// notification succeeds and restamps the reader.
func (h *MarkReadHandler) Handle(ctx context.Context, cmd MarkReadCommand) (*domain.Notification, error) {
	n, err := h.repo.FindByID(cmd.NotificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("notification %d", cmd.NotificationID)
		}
		return nil, err
	}

	if !cmd.Scope.Matches(n) {
		return nil, apperrors.Forbidden("notification %d is not visible to you", cmd.NotificationID)
	}

	now := time.Now()
	if err := h.repo.MarkRead(n.ID, cmd.Scope.UserID, now); err != nil {
		return nil, err
	}

	n.Read = true
	n.ReadAt = &now
	n.ReadBy = cmd.Scope.UserID
	return n, nil
}
