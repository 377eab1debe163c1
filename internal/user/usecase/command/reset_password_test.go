package command

import (
	"errors"
	"testing"

	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

func TestResetPassword(t *testing.T) {
	user := activeUser(t)
	repo := newFakeUserRepo(user)
	handler := NewResetPasswordHandler(repo)

	if err := handler.Handle(ResetPasswordCommand{
		UserID:      user.ID,
		NewPassword: "fresh-start",
		ActorID:     1,
	}); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if repo.passwordSetID != user.ID {
		t.Errorf("password set for user %d, want %d", repo.passwordSetID, user.ID)
	}
	if repo.passwordSetHash == "fresh-start" {
		t.Error("password stored in clear")
	}
	if !auth.CheckPassword(repo.passwordSetHash, "fresh-start") {
		t.Error("stored hash does not match the new password")
	}
}

func TestResetPasswordRejections(t *testing.T) {
	user := activeUser(t)

	tests := []struct {
		name string
		cmd  ResetPasswordCommand
		want error
	}{
		{"short password", ResetPasswordCommand{UserID: user.ID, NewPassword: "12345", ActorID: 1}, apperrors.ErrValidation},
		{"own account", ResetPasswordCommand{UserID: user.ID, NewPassword: "fresh-start", ActorID: user.ID}, apperrors.ErrValidation},
		{"unknown user", ResetPasswordCommand{UserID: 404, NewPassword: "fresh-start", ActorID: 1}, apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo(activeUser(t))
			handler := NewResetPasswordHandler(repo)

			if err := handler.Handle(tt.cmd); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if repo.passwordSetID != 0 {
				t.Error("rejected reset must not write")
			}
		})
	}
}
