package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/partner/domain"
	userhttp "github.com/kipharma/pharmacy-platform/internal/user/delivery/http"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
)

// PartnerHandler handles HTTP requests for partners
type PartnerHandler struct {
	repo domain.PartnerRepository
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(repo domain.PartnerRepository) *PartnerHandler {
	return &PartnerHandler{repo: repo}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers partner routes
func (h *PartnerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/partners", userhttp.Authenticate(h.ListPartners)).Methods("GET")
	router.HandleFunc("/api/partners", userhttp.AdminOnly(h.CreatePartner)).Methods("POST")
	router.HandleFunc("/api/partners/{id}", userhttp.Authenticate(h.GetPartner)).Methods("GET")
	router.HandleFunc("/api/partners/{id}", userhttp.AdminOnly(h.UpdatePartner)).Methods("PUT")
	router.HandleFunc("/api/partners/{id}", userhttp.AdminOnly(h.DeletePartner)).Methods("DELETE")
}

// ListPartners handles GET /api/partners
func (h *PartnerHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.repo.FindAll(domain.Filter{
		Status: r.URL.Query().Get("status"),
		Type:   r.URL.Query().Get("type"),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list partners")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list partners"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"partners": partners, "count": len(partners)},
	})
}

// GetPartner handles GET /api/partners/{id}
func (h *PartnerHandler) GetPartner(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid partner ID"})
		return
	}

	partner, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Partner not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch partner"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: partner})
}

// CreatePartner handles POST /api/partners
func (h *PartnerHandler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	var partner domain.Partner
	if err := json.NewDecoder(r.Body).Decode(&partner); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if partner.Name == "" {
		err := apperrors.Validation("partner name is required")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}
	if partner.Type == "" {
		partner.Type = domain.TypeOther
	}
	if !domain.ValidType(partner.Type) {
		err := apperrors.Validation("unknown partner type %q", partner.Type)
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}
	if partner.Status == "" {
		partner.Status = domain.StatusActive
	}

	partner.ID = 0
	if err := h.repo.Create(&partner); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create partner")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create partner"})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Partner created", Data: partner})
}

// UpdatePartner handles PUT /api/partners/{id}
func (h *PartnerHandler) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid partner ID"})
		return
	}

	partner, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Partner not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch partner"})
		return
	}

	var req struct {
		Name          *string `json:"name"`
		Type          *string `json:"type"`
		Logo          *string `json:"logo"`
		Website       *string `json:"website"`
		ContactPerson *string `json:"contact_person"`
		Email         *string `json:"email"`
		Phone         *string `json:"phone"`
		Status        *string `json:"status"`
		Description   *string `json:"description"`
		Address       *string `json:"address"`
		Order         *int    `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.Type != nil {
		if !domain.ValidType(*req.Type) {
			verr := apperrors.Validation("unknown partner type %q", *req.Type)
			respondJSON(w, apperrors.HTTPStatus(verr), Response{Success: false, Error: apperrors.Message(verr)})
			return
		}
		partner.Type = *req.Type
	}
	if req.Logo != nil {
		partner.Logo = *req.Logo
	}
	if req.Website != nil {
		partner.Website = *req.Website
	}
	if req.ContactPerson != nil {
		partner.ContactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		partner.Email = *req.Email
	}
	if req.Phone != nil {
		partner.Phone = *req.Phone
	}
	if req.Status != nil {
		partner.Status = *req.Status
	}
	if req.Description != nil {
		partner.Description = *req.Description
	}
	if req.Address != nil {
		partner.Address = *req.Address
	}
	if req.Order != nil {
		partner.Order = *req.Order
	}

	if err := h.repo.Update(partner); err != nil {
		logger.Logger.Error().Err(err).Uint("partner_id", id).Msg("Failed to update partner")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to update partner"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Partner updated", Data: partner})
}

// DeletePartner handles DELETE /api/partners/{id}
func (h *PartnerHandler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid partner ID"})
		return
	}

	if _, err := h.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Partner not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch partner"})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		logger.Logger.Error().Err(err).Uint("partner_id", id).Msg("Failed to delete partner")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to delete partner"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Partner deleted"})
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
