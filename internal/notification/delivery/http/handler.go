package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kipharma/pharmacy-platform/internal/notification/domain"
	"github.com/kipharma/pharmacy-platform/internal/notification/usecase/command"
	"github.com/kipharma/pharmacy-platform/internal/notification/usecase/query"
	userhttp "github.com/kipharma/pharmacy-platform/internal/user/delivery/http"
	userdomain "github.com/kipharma/pharmacy-platform/internal/user/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
)

// ActorSource resolves the acting user for name snapshots. Satisfied by
// the user repository.
type ActorSource interface {
	FindByID(id uint) (*userdomain.User, error)
}

// NotificationHandler handles HTTP requests for notifications
type NotificationHandler struct {
	createHandler      *command.CreateNotificationHandler
	markReadHandler    *command.MarkReadHandler
	markAllReadHandler *command.MarkAllReadHandler
	deleteHandler      *command.DeleteNotificationHandler
	listHandler        *query.ListNotificationsHandler
	actors             ActorSource
}

// NewNotificationHandler creates a new notification handler (manual DI)
func NewNotificationHandler(
	repo domain.NotificationRepository,
	products command.ProductSource,
	branches command.BranchSource,
	publisher command.AlertPublisher,
	actors ActorSource,
) *NotificationHandler {
	return &NotificationHandler{
		createHandler:      command.NewCreateNotificationHandler(repo, products, branches, publisher),
		markReadHandler:    command.NewMarkReadHandler(repo),
		markAllReadHandler: command.NewMarkAllReadHandler(repo),
		deleteHandler:      command.NewDeleteNotificationHandler(repo),
		listHandler:        query.NewListNotificationsHandler(repo),
		actors:             actors,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/notifications", userhttp.Authenticate(h.ListNotifications)).Methods("GET")
	router.HandleFunc("/api/notifications", userhttp.ManagerOrAdmin(h.CreateNotification)).Methods("POST")
	router.HandleFunc("/api/notifications/read-all", userhttp.Authenticate(h.MarkAllRead)).Methods("PUT")
	router.HandleFunc("/api/notifications/{id}/read", userhttp.Authenticate(h.MarkRead)).Methods("PUT")
	router.HandleFunc("/api/notifications/{id}", userhttp.ManagerOrAdmin(h.DeleteNotification)).Methods("DELETE")
}

// ListNotifications handles GET /api/notifications
// @Summary List notifications visible to the caller
// @Tags Notifications
// @Produce json
// @Router /api/notifications [get]
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	principal, _ := userhttp.Principal(r)

	filter := domain.ListFilter{}
	if raw := r.URL.Query().Get("read"); raw != "" {
		read := raw == "true"
		filter.Read = &read
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}

	result, err := h.listHandler.Handle(r.Context(), query.ListNotificationsQuery{
		Scope:  domain.ScopeFor(principal.Role, principal.UserID),
		Filter: filter,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list notifications")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list notifications"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// CreateNotification handles POST /api/notifications
func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	principal, _ := userhttp.Principal(r)

	var req struct {
		Type      string `json:"type"`
		Title     string `json:"title"`
		Message   string `json:"message"`
		ProductID uint   `json:"product_id"`
		BranchID  uint   `json:"branch_id"`
		Priority  string `json:"priority"`
		ForRole   string `json:"for_role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	actorName := principal.Email
	if actor, err := h.actors.FindByID(principal.UserID); err == nil {
		actorName = actor.Name
	}

	notification, err := h.createHandler.Handle(r.Context(), command.CreateNotificationCommand{
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		ProductID: req.ProductID,
		BranchID:  req.BranchID,
		Priority:  req.Priority,
		ForRole:   req.ForRole,
		ActorID:   principal.UserID,
		ActorName: actorName,
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Str("type", req.Type).Msg("Notification rejected")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Notification created", Data: notification})
}

// MarkRead handles PUT /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	principal, _ := userhttp.Principal(r)

	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid notification ID"})
		return
	}

	notification, err := h.markReadHandler.Handle(r.Context(), command.MarkReadCommand{
		NotificationID: id,
		Scope:          domain.ScopeFor(principal.Role, principal.UserID),
	})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Notification marked as read", Data: notification})
}

// MarkAllRead handles PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	principal, _ := userhttp.Principal(r)

	err := h.markAllReadHandler.Handle(r.Context(), command.MarkAllReadCommand{
		Scope: domain.ScopeFor(principal.Role, principal.UserID),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to mark notifications read")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to mark notifications read"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "All notifications marked as read"})
}

// DeleteNotification handles DELETE /api/notifications/{id}
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	principal, _ := userhttp.Principal(r)

	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid notification ID"})
		return
	}

	err = h.deleteHandler.Handle(r.Context(), command.DeleteNotificationCommand{
		NotificationID: id,
		Scope:          domain.ScopeFor(principal.Role, principal.UserID),
	})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Notification deleted"})
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
