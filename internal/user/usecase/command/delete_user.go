package command

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/user/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
)

// DeleteUserCommand represents the command to delete a staff member
type DeleteUserCommand struct {
	UserID  uint
	ActorID uint
}

// DeleteUserHandler handles user deletion
type DeleteUserHandler struct {
	repo domain.UserRepository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle executes the delete user command. Self-deletion is rejected.
func (h *DeleteUserHandler) Handle(cmd DeleteUserCommand) error {
	if cmd.UserID == cmd.ActorID {
		return apperrors.Validation("cannot delete yourself")
	}

	if _, err := h.repo.FindByID(cmd.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user %d", cmd.UserID)
		}
		return err
	}

	return h.repo.Delete(cmd.UserID)
}
