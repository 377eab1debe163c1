package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kipharma/pharmacy-platform/internal/user/domain"
	"github.com/kipharma/pharmacy-platform/internal/user/usecase/command"
	"github.com/kipharma/pharmacy-platform/internal/user/usecase/query"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
)

// UserHandler handles HTTP requests for auth and user management
type UserHandler struct {
	loginHandler          *command.LoginUserHandler
	createHandler         *command.CreateUserHandler
	updateHandler         *command.UpdateUserHandler
	deleteHandler         *command.DeleteUserHandler
	changePasswordHandler *command.ChangePasswordHandler
	resetPasswordHandler  *command.ResetPasswordHandler

	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler
}

// NewUserHandler creates a new user handler (manual DI)
func NewUserHandler(repo domain.UserRepository, codes command.PortalCodeSource) *UserHandler {
	return &UserHandler{
		loginHandler:          command.NewLoginUserHandler(repo, codes),
		createHandler:         command.NewCreateUserHandler(repo),
		updateHandler:         command.NewUpdateUserHandler(repo),
		deleteHandler:         command.NewDeleteUserHandler(repo),
		changePasswordHandler: command.NewChangePasswordHandler(repo),
		resetPasswordHandler:  command.NewResetPasswordHandler(repo),
		getUserHandler:        query.NewGetUserHandler(repo),
		listHandler:           query.NewListUsersHandler(repo),
	}
}

// NewUserHandlerWithDI creates a new user handler using dependency injection
func NewUserHandlerWithDI(
	loginHandler *command.LoginUserHandler,
	createHandler *command.CreateUserHandler,
	updateHandler *command.UpdateUserHandler,
	deleteHandler *command.DeleteUserHandler,
	changePasswordHandler *command.ChangePasswordHandler,
	resetPasswordHandler *command.ResetPasswordHandler,
	getUserHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
) *UserHandler {
	return &UserHandler{
		loginHandler:          loginHandler,
		createHandler:         createHandler,
		updateHandler:         updateHandler,
		deleteHandler:         deleteHandler,
		changePasswordHandler: changePasswordHandler,
		resetPasswordHandler:  resetPasswordHandler,
		getUserHandler:        getUserHandler,
		listHandler:           listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers auth and user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/api/auth/logout", Authenticate(h.Logout)).Methods("POST")
	router.HandleFunc("/api/auth/me", Authenticate(h.Me)).Methods("GET")
	router.HandleFunc("/api/auth/change-password", Authenticate(h.ChangePassword)).Methods("PUT")

	router.HandleFunc("/api/users", AdminOnly(h.ListUsers)).Methods("GET")
	router.HandleFunc("/api/users", AdminOnly(h.CreateUser)).Methods("POST")
	router.HandleFunc("/api/users/{id}", AdminOnly(h.GetUser)).Methods("GET")
	router.HandleFunc("/api/users/{id}", AdminOnly(h.UpdateUser)).Methods("PUT")
	router.HandleFunc("/api/users/{id}", AdminOnly(h.DeleteUser)).Methods("DELETE")
	router.HandleFunc("/api/users/{id}/reset-password", AdminOnly(h.ResetPassword)).Methods("PUT")
}

// Login handles POST /api/auth/login
// @Summary Portal login
// @Tags Auth
// @Accept json
// @Produce json
// @Router /api/auth/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccessCode string `json:"accessCode"`
		Email      string `json:"email"`
		Password   string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	resp, err := h.loginHandler.Handle(command.LoginUserCommand{
		AccessCode: req.AccessCode,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Str("email", req.Email).Msg("Login rejected")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	logger.Logger.Info().Uint("user_id", resp.User.ID).Str("role", resp.User.Role).Msg("User logged in")

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    resp,
	})
}

// Logout handles POST /api/auth/logout. Tokens are stateless; the client
// discards its copy.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out successfully"})
}

// Me handles GET /api/auth/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, _ := Principal(r)

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: principal.UserID})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// ChangePassword handles PUT /api/auth/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, _ := Principal(r)

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	token, err := h.changePasswordHandler.Handle(command.ChangePasswordCommand{
		UserID:          principal.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Password changed successfully",
		Data:    map[string]string{"token": token},
	})
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	branchID, _ := strconv.ParseUint(r.URL.Query().Get("branchId"), 10, 32)

	users, err := h.listHandler.Handle(query.ListUsersQuery{Filter: domain.Filter{
		Role:     r.URL.Query().Get("role"),
		Status:   r.URL.Query().Get("status"),
		BranchID: uint(branchID),
		Search:   r.URL.Query().Get("search"),
	}})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list users")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list users"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"users": users, "count": len(users)},
	})
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid user ID"})
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: id})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		BranchID uint   `json:"branch_id"`
		Phone    string `json:"phone"`
		Avatar   string `json:"avatar"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.createHandler.Handle(command.CreateUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		BranchID: req.BranchID,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
		Status:   req.Status,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create user")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "User created", Data: user})
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid user ID"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Role     *string `json:"role"`
		BranchID *uint   `json:"branch_id"`
		Phone    *string `json:"phone"`
		Avatar   *string `json:"avatar"`
		Status   *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.updateHandler.Handle(command.UpdateUserCommand{
		UserID:   id,
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		BranchID: req.BranchID,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
		Status:   req.Status,
	})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "User updated", Data: user})
}

// ResetPassword handles PUT /api/users/{id}/reset-password
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid user ID"})
		return
	}

	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	principal, _ := Principal(r)

	if err := h.resetPasswordHandler.Handle(command.ResetPasswordCommand{
		UserID:      id,
		NewPassword: req.NewPassword,
		ActorID:     principal.UserID,
	}); err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	logger.Logger.Info().Uint("user_id", id).Uint("by", principal.UserID).Msg("Password reset")

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Password reset successfully"})
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid user ID"})
		return
	}

	principal, _ := Principal(r)

	if err := h.deleteHandler.Handle(command.DeleteUserCommand{UserID: id, ActorID: principal.UserID}); err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "User deleted"})
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
