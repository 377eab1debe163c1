package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

type contextKey string

const principalKey contextKey = "principal"

// Authenticate validates the Bearer JWT and stores the resolved principal
// in the request context
func Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// Principal extracts the authenticated caller from the request context
func Principal(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(principalKey).(*auth.Claims)
	return claims, ok
}

// RequireRoles authenticates and then checks the caller's role against
// the allowed set
func RequireRoles(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return Authenticate(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := Principal(r)
			if !ok {
				respondError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondError(w, http.StatusForbidden, "Insufficient role")
		})
	}
}

// AdminOnly restricts a handler to Admins
func AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return RequireRoles(auth.RoleAdmin)(next)
}

// ManagerOrAdmin restricts a handler to Managers and Admins
func ManagerOrAdmin(next http.HandlerFunc) http.HandlerFunc {
	return RequireRoles(auth.RoleAdmin, auth.RoleManager)(next)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": message})
}
