package command

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/user/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

// UpdateUserCommand represents the command to update a staff member.
// Passwords never travel through this path.
type UpdateUserCommand struct {
	UserID   uint
	Name     *string
	Email    *string
	Role     *string
	BranchID *uint
	Phone    *string
	Avatar   *string
	Status   *string
}

// UpdateUserHandler handles user updates
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %d", cmd.UserID)
		}
		return nil, err
	}

	if cmd.Email != nil && *cmd.Email != user.Email {
		if !emailPattern.MatchString(*cmd.Email) {
			return nil, apperrors.Validation("valid email is required")
		}
		if _, err := h.repo.FindByEmail(*cmd.Email); err == nil {
			return nil, apperrors.Conflict("email %s already registered", *cmd.Email)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *cmd.Email
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, apperrors.Validation("name cannot be empty")
		}
		user.Name = *cmd.Name
	}
	if cmd.Role != nil {
		if !auth.ValidRole(*cmd.Role) {
			return nil, apperrors.Validation("unknown role %q", *cmd.Role)
		}
		user.Role = *cmd.Role
	}
	if cmd.BranchID != nil {
		user.BranchID = *cmd.BranchID
	}
	if cmd.Phone != nil {
		user.Phone = *cmd.Phone
	}
	if cmd.Avatar != nil {
		user.Avatar = *cmd.Avatar
	}
	if cmd.Status != nil {
		if *cmd.Status != domain.StatusActive && *cmd.Status != domain.StatusInactive {
			return nil, apperrors.Validation("status must be Active or Inactive")
		}
		user.Status = *cmd.Status
	}

	if err := h.repo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}
