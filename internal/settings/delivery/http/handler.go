package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/settings/domain"
	userhttp "github.com/kipharma/pharmacy-platform/internal/user/delivery/http"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
)

// SettingsHandler handles HTTP requests for application settings
type SettingsHandler struct {
	repo domain.SettingRepository
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(repo domain.SettingRepository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/settings", userhttp.AdminOnly(h.ListSettings)).Methods("GET")
	router.HandleFunc("/api/settings", userhttp.AdminOnly(h.SetSetting)).Methods("PUT")
	router.HandleFunc("/api/settings/portal-code", userhttp.AdminOnly(h.UpdatePortalCode)).Methods("PUT")
	router.HandleFunc("/api/settings/{key}", userhttp.AdminOnly(h.GetSetting)).Methods("GET")
}

// ListSettings handles GET /api/settings
func (h *SettingsHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repo.List()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list settings")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list settings"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"settings": settings}})
}

// GetSetting handles GET /api/settings/{key}
func (h *SettingsHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	setting, err := h.repo.Get(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Setting not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch setting"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: setting})
}

// SetSetting handles PUT /api/settings
func (h *SettingsHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	principal, _ := userhttp.Principal(r)

	var req struct {
		Key         string `json:"key"`
		Value       string `json:"value"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Key == "" {
		err := apperrors.Validation("setting key is required")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	setting, err := h.repo.Set(req.Key, req.Value, req.Description, principal.UserID)
	if err != nil {
		logger.Logger.Error().Err(err).Str("key", req.Key).Msg("Failed to save setting")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to save setting"})
		return
	}

	logger.Logger.Info().Str("key", req.Key).Uint("updated_by", principal.UserID).Msg("Setting saved")
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Setting saved", Data: setting})
}

// UpdatePortalCode handles PUT /api/settings/portal-code
func (h *SettingsHandler) UpdatePortalCode(w http.ResponseWriter, r *http.Request) {
	principal, _ := userhttp.Principal(r)

	var req struct {
		AccessCode string `json:"accessCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if len(req.AccessCode) < domain.MinPortalCodeLength {
		err := apperrors.Validation("access code must be at least %d characters", domain.MinPortalCodeLength)
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	setting, err := h.repo.Set(domain.KeyPortalAccessCode, req.AccessCode, "", principal.UserID)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update portal access code")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to update portal access code"})
		return
	}

	logger.Logger.Info().Uint("updated_by", principal.UserID).Msg("Portal access code updated")
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Portal access code updated", Data: setting})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
