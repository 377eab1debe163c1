package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/branch/domain"
	userhttp "github.com/kipharma/pharmacy-platform/internal/user/delivery/http"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
)

// BranchCounter reports per-branch record counts. The product and user
// repositories both satisfy it.
type BranchCounter interface {
	CountByBranch(branchID uint) (int64, error)
}

// BranchHandler handles HTTP requests for branches
type BranchHandler struct {
	repo     domain.BranchRepository
	products BranchCounter
	staff    BranchCounter
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(repo domain.BranchRepository, products, staff BranchCounter) *BranchHandler {
	return &BranchHandler{repo: repo, products: products, staff: staff}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers branch routes
func (h *BranchHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/branches", userhttp.Authenticate(h.ListBranches)).Methods("GET")
	router.HandleFunc("/api/branches", userhttp.AdminOnly(h.CreateBranch)).Methods("POST")
	router.HandleFunc("/api/branches/{id}", userhttp.Authenticate(h.GetBranch)).Methods("GET")
	router.HandleFunc("/api/branches/{id}", userhttp.AdminOnly(h.UpdateBranch)).Methods("PUT")
	router.HandleFunc("/api/branches/{id}", userhttp.AdminOnly(h.DeleteBranch)).Methods("DELETE")
}

type branchView struct {
	domain.Branch
	ProductCount int64 `json:"product_count"`
	StaffCount   int64 `json:"staff_count"`
}

func (h *BranchHandler) view(branch domain.Branch) branchView {
	products, err := h.products.CountByBranch(branch.ID)
	if err != nil {
		logger.Logger.Warn().Err(err).Uint("branch_id", branch.ID).Msg("Product count unavailable")
	}
	staff, err := h.staff.CountByBranch(branch.ID)
	if err != nil {
		logger.Logger.Warn().Err(err).Uint("branch_id", branch.ID).Msg("Staff count unavailable")
	}
	return branchView{Branch: branch, ProductCount: products, StaffCount: staff}
}

// ListBranches handles GET /api/branches
// @Summary List branches
// @Tags Branches
// @Produce json
// @Router /api/branches [get]
func (h *BranchHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.repo.FindAll(domain.Filter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list branches")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list branches"})
		return
	}

	views := make([]branchView, 0, len(branches))
	for _, branch := range branches {
		views = append(views, h.view(branch))
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"branches": views, "count": len(views)},
	})
}

// GetBranch handles GET /api/branches/{id}
func (h *BranchHandler) GetBranch(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid branch ID"})
		return
	}

	branch, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Branch not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch branch"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: h.view(*branch)})
}

// CreateBranch handles POST /api/branches
func (h *BranchHandler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var branch domain.Branch
	if err := json.NewDecoder(r.Body).Decode(&branch); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if branch.Name == "" {
		err := apperrors.Validation("branch name is required")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}
	if branch.Status == "" {
		branch.Status = domain.StatusActive
	}
	if branch.OpeningHours == "" {
		branch.OpeningHours = domain.DefaultOpeningHours
	}

	branch.ID = 0
	if err := h.repo.Create(&branch); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create branch")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create branch"})
		return
	}

	logger.Logger.Info().Uint("branch_id", branch.ID).Str("name", branch.Name).Msg("Branch created")
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Branch created", Data: branch})
}

// UpdateBranch handles PUT /api/branches/{id}
func (h *BranchHandler) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid branch ID"})
		return
	}

	branch, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Branch not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch branch"})
		return
	}

	var req struct {
		Name         *string `json:"name"`
		Location     *string `json:"location"`
		Manager      *string `json:"manager"`
		ManagerID    *uint   `json:"manager_id"`
		Status       *string `json:"status"`
		Contact      *string `json:"contact"`
		Email        *string `json:"email"`
		Street       *string `json:"street"`
		City         *string `json:"city"`
		District     *string `json:"district"`
		OpeningHours *string `json:"opening_hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Location != nil {
		branch.Location = *req.Location
	}
	if req.Manager != nil {
		branch.Manager = *req.Manager
	}
	if req.ManagerID != nil {
		branch.ManagerID = *req.ManagerID
	}
	if req.Status != nil {
		branch.Status = *req.Status
	}
	if req.Contact != nil {
		branch.Contact = *req.Contact
	}
	if req.Email != nil {
		branch.Email = *req.Email
	}
	if req.Street != nil {
		branch.Street = *req.Street
	}
	if req.City != nil {
		branch.City = *req.City
	}
	if req.District != nil {
		branch.District = *req.District
	}
	if req.OpeningHours != nil {
		branch.OpeningHours = *req.OpeningHours
	}

	if branch.Name == "" {
		err := apperrors.Validation("branch name is required")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	if err := h.repo.Update(branch); err != nil {
		logger.Logger.Error().Err(err).Uint("branch_id", id).Msg("Failed to update branch")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to update branch"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Branch updated", Data: branch})
}

// DeleteBranch handles DELETE /api/branches/{id}
func (h *BranchHandler) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid branch ID"})
		return
	}

	if _, err := h.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Branch not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch branch"})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		logger.Logger.Error().Err(err).Uint("branch_id", id).Msg("Failed to delete branch")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to delete branch"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Branch deleted"})
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
