package command

import (
	"context"
	"time"

	"github.com/kipharma/pharmacy-platform/internal/notification/domain"
)

// MarkAllReadCommand marks every unread notification visible to the
// caller as read
type MarkAllReadCommand struct {
	Scope domain.Scope
}

// MarkAllReadHandler handles mark all read commands
type MarkAllReadHandler struct {
	repo domain.NotificationRepository
}

// NewMarkAllReadHandler creates a new mark all read handler
func NewMarkAllReadHandler(repo domain.NotificationRepository) *MarkAllReadHandler {
	return &MarkAllReadHandler{repo: repo}
}

// Handle executes the mark all read command
func (h *MarkAllReadHandler) Handle(ctx context.Context, cmd MarkAllReadCommand) error {
	return h.repo.MarkAllRead(cmd.Scope, cmd.Scope.UserID, time.Now())
}
