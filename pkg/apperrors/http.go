package apperrors

import (
	"errors"
	"net/http"
)

// HTTPStatus maps an error kind to its HTTP status code. Unrecognized
// errors are server errors.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the error message for client-visible kinds and a
// generic message for everything else, so internals never leak
func Message(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "Server error"
	}
	return err.Error()
}
