package command

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/user/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

// ResetPasswordCommand sets a new password for a staff member without
// knowing the current one. Admins use it to recover locked-out accounts;
// their own password goes through the change-password flow.
type ResetPasswordCommand struct {
	UserID      uint
	NewPassword string

	// Acting principal
	ActorID uint
}

// ResetPasswordHandler handles admin password resets
type ResetPasswordHandler struct {
	repo domain.UserRepository
}

// NewResetPasswordHandler creates a new reset password handler
func NewResetPasswordHandler(repo domain.UserRepository) *ResetPasswordHandler {
	return &ResetPasswordHandler{repo: repo}
}

// Handle executes the reset password command
func (h *ResetPasswordHandler) Handle(cmd ResetPasswordCommand) error {
	if len(cmd.NewPassword) < 6 {
		return apperrors.Validation("password must be at least 6 characters")
	}
	if cmd.UserID == cmd.ActorID {
		return apperrors.Validation("use change-password for your own account")
	}

	if _, err := h.repo.FindByID(cmd.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user %d", cmd.UserID)
		}
		return err
	}

	hash, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return err
	}

	return h.repo.UpdatePassword(cmd.UserID, hash)
}
