package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/career/domain"
	userhttp "github.com/kipharma/pharmacy-platform/internal/user/delivery/http"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
)

// CareerHandler handles HTTP requests for job postings
type CareerHandler struct {
	repo domain.CareerRepository
}

// NewCareerHandler creates a new career handler
func NewCareerHandler(repo domain.CareerRepository) *CareerHandler {
	return &CareerHandler{repo: repo}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers career routes
func (h *CareerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/careers", userhttp.Authenticate(h.ListCareers)).Methods("GET")
	router.HandleFunc("/api/careers", userhttp.AdminOnly(h.CreateCareer)).Methods("POST")
	router.HandleFunc("/api/careers/{id}", userhttp.Authenticate(h.GetCareer)).Methods("GET")
	router.HandleFunc("/api/careers/{id}", userhttp.AdminOnly(h.UpdateCareer)).Methods("PUT")
	router.HandleFunc("/api/careers/{id}", userhttp.AdminOnly(h.DeleteCareer)).Methods("DELETE")
}

// autoClose flips postings whose closing date has passed and persists
// the change. Read paths always report the effective status.
func (h *CareerHandler) autoClose(career *domain.Career) {
	if career.CloseIfPast(time.Now()) {
		if err := h.repo.Update(career); err != nil {
			logger.Logger.Warn().Err(err).Uint("career_id", career.ID).Msg("Auto-close not persisted")
		}
	}
}

// ListCareers handles GET /api/careers
func (h *CareerHandler) ListCareers(w http.ResponseWriter, r *http.Request) {
	careers, err := h.repo.FindAll(domain.Filter{
		Status:     r.URL.Query().Get("status"),
		Department: r.URL.Query().Get("department"),
		Type:       r.URL.Query().Get("type"),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list careers")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list careers"})
		return
	}

	for i := range careers {
		h.autoClose(&careers[i])
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"careers": careers, "count": len(careers)},
	})
}

// GetCareer handles GET /api/careers/{id}
func (h *CareerHandler) GetCareer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid career ID"})
		return
	}

	career, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Career not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch career"})
		return
	}

	h.autoClose(career)

	respondJSON(w, http.StatusOK, Response{Success: true, Data: career})
}

// CreateCareer handles POST /api/careers
func (h *CareerHandler) CreateCareer(w http.ResponseWriter, r *http.Request) {
	var career domain.Career
	if err := json.NewDecoder(r.Body).Decode(&career); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if career.Title == "" {
		err := apperrors.Validation("career title is required")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}
	if career.Type == "" {
		career.Type = domain.TypeFullTime
	}
	if !domain.ValidType(career.Type) {
		err := apperrors.Validation("unknown employment type %q", career.Type)
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}
	if career.Status == "" {
		career.Status = domain.StatusOpen
	}
	if career.PostedDate.IsZero() {
		career.PostedDate = time.Now()
	}

	career.ID = 0
	if err := h.repo.Create(&career); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create career")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create career"})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Career created", Data: career})
}

// UpdateCareer handles PUT /api/careers/{id}
func (h *CareerHandler) UpdateCareer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid career ID"})
		return
	}

	career, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Career not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch career"})
		return
	}

	var req struct {
		Title             *string    `json:"title"`
		Department        *string    `json:"department"`
		Location          *string    `json:"location"`
		Type              *string    `json:"type"`
		Description       *string    `json:"description"`
		Requirements      *string    `json:"requirements"`
		Responsibilities  *string    `json:"responsibilities"`
		Salary            *string    `json:"salary"`
		Benefits          *string    `json:"benefits"`
		ClosingDate       *time.Time `json:"closing_date"`
		Status            *string    `json:"status"`
		ApplicationsCount *int       `json:"applications_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Title != nil {
		career.Title = *req.Title
	}
	if req.Department != nil {
		career.Department = *req.Department
	}
	if req.Location != nil {
		career.Location = *req.Location
	}
	if req.Type != nil {
		if !domain.ValidType(*req.Type) {
			verr := apperrors.Validation("unknown employment type %q", *req.Type)
			respondJSON(w, apperrors.HTTPStatus(verr), Response{Success: false, Error: apperrors.Message(verr)})
			return
		}
		career.Type = *req.Type
	}
	if req.Description != nil {
		career.Description = *req.Description
	}
	if req.Requirements != nil {
		career.Requirements = *req.Requirements
	}
	if req.Responsibilities != nil {
		career.Responsibilities = *req.Responsibilities
	}
	if req.Salary != nil {
		career.Salary = *req.Salary
	}
	if req.Benefits != nil {
		career.Benefits = *req.Benefits
	}
	if req.ClosingDate != nil {
		career.ClosingDate = req.ClosingDate
	}
	if req.Status != nil {
		career.Status = *req.Status
	}
	if req.ApplicationsCount != nil {
		career.ApplicationsCount = *req.ApplicationsCount
	}

	// An explicit status in the request still loses to a past closing date
	career.CloseIfPast(time.Now())

	if err := h.repo.Update(career); err != nil {
		logger.Logger.Error().Err(err).Uint("career_id", id).Msg("Failed to update career")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to update career"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Career updated", Data: career})
}

// DeleteCareer handles DELETE /api/careers/{id}
func (h *CareerHandler) DeleteCareer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid career ID"})
		return
	}

	if _, err := h.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Career not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch career"})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		logger.Logger.Error().Err(err).Uint("career_id", id).Msg("Failed to delete career")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to delete career"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Career deleted"})
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
