package command

import (
	"errors"
	"testing"

	"github.com/kipharma/pharmacy-platform/internal/user/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

func TestCreateUser(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewCreateUserHandler(repo)

	user, err := handler.Handle(CreateUserCommand{
		Name:     "Alice Uwase",
		Email:    "alice@kipharma.com",
		Password: "hunter22",
		Role:     auth.RolePharmacist,
		BranchID: 1,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if user.ID == 0 {
		t.Error("user not persisted")
	}
	if user.Password == "hunter22" {
		t.Error("password stored in clear")
	}
	if !auth.CheckPassword(user.Password, "hunter22") {
		t.Error("stored hash does not match the password")
	}
	if user.Status != domain.StatusActive {
		t.Errorf("Status = %q, want default %q", user.Status, domain.StatusActive)
	}
}

func TestCreateUserDefaultsToStaff(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewCreateUserHandler(repo)

	user, err := handler.Handle(CreateUserCommand{
		Name:     "Bob",
		Email:    "bob@kipharma.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if user.Role != auth.RoleStaff {
		t.Errorf("Role = %q, want %q", user.Role, auth.RoleStaff)
	}
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateUserCommand
		want error
	}{
		{"missing name", CreateUserCommand{Email: "a@b.co", Password: "hunter22"}, apperrors.ErrValidation},
		{"bad email", CreateUserCommand{Name: "A", Email: "not-an-email", Password: "hunter22"}, apperrors.ErrValidation},
		{"short password", CreateUserCommand{Name: "A", Email: "a@b.co", Password: "12345"}, apperrors.ErrValidation},
		{"unknown role", CreateUserCommand{Name: "A", Email: "a@b.co", Password: "hunter22", Role: "Owner"}, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCreateUserHandler(newFakeUserRepo())
			if _, err := handler.Handle(tt.cmd); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 1, Email: "taken@kipharma.com"})
	handler := NewCreateUserHandler(repo)

	_, err := handler.Handle(CreateUserCommand{
		Name:     "A",
		Email:    "taken@kipharma.com",
		Password: "hunter22",
	})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}
