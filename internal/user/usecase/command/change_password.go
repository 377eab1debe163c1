package command

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/user/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

// ChangePasswordCommand represents the command to change the caller's password
type ChangePasswordCommand struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordHandler handles password changes
type ChangePasswordHandler struct {
	repo domain.UserRepository
}

// NewChangePasswordHandler creates a new change password handler
func NewChangePasswordHandler(repo domain.UserRepository) *ChangePasswordHandler {
	return &ChangePasswordHandler{repo: repo}
}

// Handle executes the change password command and returns a fresh token
func (h *ChangePasswordHandler) Handle(cmd ChangePasswordCommand) (string, error) {
	if cmd.CurrentPassword == "" {
		return "", apperrors.Validation("current password is required")
	}
	if len(cmd.NewPassword) < 6 {
		return "", apperrors.Validation("new password must be at least 6 characters")
	}

	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFound("user %d", cmd.UserID)
		}
		return "", err
	}

	if !auth.CheckPassword(user.Password, cmd.CurrentPassword) {
		return "", apperrors.Validation("current password is incorrect")
	}

	hash, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return "", err
	}

	if err := h.repo.UpdatePassword(user.ID, hash); err != nil {
		return "", err
	}

	return auth.GenerateToken(user.ID, user.Email, user.Role, user.BranchID)
}
