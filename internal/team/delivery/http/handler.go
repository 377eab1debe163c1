package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/team/domain"
	userhttp "github.com/kipharma/pharmacy-platform/internal/user/delivery/http"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
)

// TeamHandler handles HTTP requests for team members
type TeamHandler struct {
	repo domain.TeamRepository
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(repo domain.TeamRepository) *TeamHandler {
	return &TeamHandler{repo: repo}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers team routes
func (h *TeamHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/team", userhttp.Authenticate(h.ListMembers)).Methods("GET")
	router.HandleFunc("/api/team", userhttp.AdminOnly(h.CreateMember)).Methods("POST")
	router.HandleFunc("/api/team/departments/list", userhttp.Authenticate(h.ListDepartments)).Methods("GET")
	router.HandleFunc("/api/team/{id}", userhttp.Authenticate(h.GetMember)).Methods("GET")
	router.HandleFunc("/api/team/{id}", userhttp.AdminOnly(h.UpdateMember)).Methods("PUT")
	router.HandleFunc("/api/team/{id}", userhttp.AdminOnly(h.DeleteMember)).Methods("DELETE")
}

// ListMembers handles GET /api/team
func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.repo.FindAll(domain.Filter{
		Status:     r.URL.Query().Get("status"),
		Department: r.URL.Query().Get("department"),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list team members")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list team members"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"team": members, "count": len(members)},
	})
}

// ListDepartments handles GET /api/team/departments/list
func (h *TeamHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.repo.Departments()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list departments")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list departments"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"departments": departments}})
}

// GetMember handles GET /api/team/{id}
func (h *TeamHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid team member ID"})
		return
	}

	member, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Team member not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch team member"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: member})
}

// CreateMember handles POST /api/team
func (h *TeamHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var member domain.TeamMember
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if member.Name == "" || member.Role == "" {
		err := apperrors.Validation("name and role are required")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}
	if member.Status == "" {
		member.Status = domain.StatusActive
	}

	member.ID = 0
	if err := h.repo.Create(&member); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create team member")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create team member"})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Team member created", Data: member})
}

// UpdateMember handles PUT /api/team/{id}
func (h *TeamHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid team member ID"})
		return
	}

	member, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Team member not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch team member"})
		return
	}

	var req struct {
		Name       *string `json:"name"`
		Role       *string `json:"role"`
		Department *string `json:"department"`
		Email      *string `json:"email"`
		Phone      *string `json:"phone"`
		Image      *string `json:"image"`
		Bio        *string `json:"bio"`
		Status     *string `json:"status"`
		LinkedIn   *string `json:"linkedin"`
		Twitter    *string `json:"twitter"`
		Order      *int    `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Role != nil {
		member.Role = *req.Role
	}
	if req.Department != nil {
		member.Department = *req.Department
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Image != nil {
		member.Image = *req.Image
	}
	if req.Bio != nil {
		member.Bio = *req.Bio
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if req.LinkedIn != nil {
		member.LinkedIn = *req.LinkedIn
	}
	if req.Twitter != nil {
		member.Twitter = *req.Twitter
	}
	if req.Order != nil {
		member.Order = *req.Order
	}

	if err := h.repo.Update(member); err != nil {
		logger.Logger.Error().Err(err).Uint("member_id", id).Msg("Failed to update team member")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to update team member"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Team member updated", Data: member})
}

// DeleteMember handles DELETE /api/team/{id}
func (h *TeamHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid team member ID"})
		return
	}

	if _, err := h.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Team member not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch team member"})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		logger.Logger.Error().Err(err).Uint("member_id", id).Msg("Failed to delete team member")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to delete team member"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Team member deleted"})
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
