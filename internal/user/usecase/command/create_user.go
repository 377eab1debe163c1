package command

import (
	"errors"
	"regexp"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/user/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// CreateUserCommand represents the command to create a staff member
type CreateUserCommand struct {
	Name     string
	Email    string
	Password string
	Role     string
	BranchID uint
	Phone    string
	Avatar   string
	Status   string
}

// CreateUserHandler handles user creation
type CreateUserHandler struct {
	repo domain.UserRepository
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.UserRepository) *CreateUserHandler {
	return &CreateUserHandler{repo: repo}
}

// Handle executes the create user command
func (h *CreateUserHandler) Handle(cmd CreateUserCommand) (*domain.User, error) {
	if cmd.Name == "" {
		return nil, apperrors.Validation("name is required")
	}
	if !emailPattern.MatchString(cmd.Email) {
		return nil, apperrors.Validation("valid email is required")
	}
	if len(cmd.Password) < 6 {
		return nil, apperrors.Validation("password must be at least 6 characters")
	}
	role := cmd.Role
	if role == "" {
		role = auth.RoleStaff
	}
	if !auth.ValidRole(role) {
		return nil, apperrors.Validation("unknown role %q", cmd.Role)
	}

	if _, err := h.repo.FindByEmail(cmd.Email); err == nil {
		return nil, apperrors.Conflict("email %s already registered", cmd.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	status := cmd.Status
	if status == "" {
		status = domain.StatusActive
	}

	user := &domain.User{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: hash,
		Role:     role,
		BranchID: cmd.BranchID,
		Phone:    cmd.Phone,
		Avatar:   cmd.Avatar,
		Status:   status,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}
