package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("product %d", 42), http.StatusNotFound},
		{"forbidden", Forbidden("branch scope"), http.StatusForbidden},
		{"validation", Validation("name is required"), http.StatusBadRequest},
		{"conflict", Conflict("email %s taken", "a@b.co"), http.StatusConflict},
		{"unauthorized", Unauthorized("bad token"), http.StatusUnauthorized},
		{"bare sentinel", ErrNotFound, http.StatusNotFound},
		{"double wrapped", fmt.Errorf("outer: %w", Validation("inner")), http.StatusBadRequest},
		{"unknown error", errors.New("disk full"), http.StatusInternalServerError},
		{"nil-adjacent plain error", fmt.Errorf("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestMessageHidesInternals(t *testing.T) {
	internal := errors.New("pq: connection refused")
	if got := Message(internal); got != "Server error" {
		t.Errorf("Message(internal) = %q, want %q", got, "Server error")
	}

	visible := Validation("stock cannot be negative")
	if got := Message(visible); got != visible.Error() {
		t.Errorf("Message(validation) = %q, want %q", got, visible.Error())
	}
}
