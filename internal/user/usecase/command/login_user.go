package command

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/user/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

// PortalCodeSource resolves the staff portal access code. Satisfied by the
// settings repository.
type PortalCodeSource interface {
	GetValue(key string) (string, error)
}

// PortalAccessCodeKey is the settings key holding the access code
const PortalAccessCodeKey = "portalAccessCode"

// LoginUserCommand represents a portal login: access code plus credentials
type LoginUserCommand struct {
	AccessCode string
	Email      string
	Password   string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles user login
type LoginUserHandler struct {
	repo  domain.UserRepository
	codes PortalCodeSource
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository, codes PortalCodeSource) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, codes: codes}
}

// Handle executes the login command
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResponse, error) {
	if cmd.AccessCode == "" {
		return nil, apperrors.Validation("access code is required")
	}
	if cmd.Email == "" {
		return nil, apperrors.Validation("email is required")
	}
	if cmd.Password == "" {
		return nil, apperrors.Validation("password is required")
	}

	storedCode, err := h.codes.GetValue(PortalAccessCodeKey)
	if err != nil || cmd.AccessCode != storedCode {
		return nil, apperrors.Unauthorized("invalid access code")
	}

	user, err := h.repo.FindByEmail(cmd.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	if !user.IsActive() {
		return nil, apperrors.Unauthorized("account is inactive")
	}

	now := time.Now()
	if err := h.repo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role, user.BranchID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: user}, nil
}
