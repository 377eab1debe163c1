package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	branchdomain "github.com/kipharma/pharmacy-platform/internal/branch/domain"
	careerdomain "github.com/kipharma/pharmacy-platform/internal/career/domain"
	partnerdomain "github.com/kipharma/pharmacy-platform/internal/partner/domain"
	productdomain "github.com/kipharma/pharmacy-platform/internal/product/domain"
	teamdomain "github.com/kipharma/pharmacy-platform/internal/team/domain"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
)

// PublicHandler serves the unauthenticated marketing-site endpoints.
// Everything here is read-only.
type PublicHandler struct {
	products productdomain.ProductRepository
	branches branchdomain.BranchRepository
	team     teamdomain.TeamRepository
	partners partnerdomain.PartnerRepository
	careers  careerdomain.CareerRepository
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(
	products productdomain.ProductRepository,
	branches branchdomain.BranchRepository,
	team teamdomain.TeamRepository,
	partners partnerdomain.PartnerRepository,
	careers careerdomain.CareerRepository,
) *PublicHandler {
	return &PublicHandler{
		products: products,
		branches: branches,
		team:     team,
		partners: partners,
		careers:  careers,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers public routes
func (h *PublicHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/public/products", h.ListProducts).Methods("GET")
	router.HandleFunc("/api/public/products/categories", h.ListCategories).Methods("GET")
	router.HandleFunc("/api/public/products/{id}", h.GetProduct).Methods("GET")
	router.HandleFunc("/api/public/branches", h.ListBranches).Methods("GET")
	router.HandleFunc("/api/public/team", h.ListTeam).Methods("GET")
	router.HandleFunc("/api/public/partners", h.ListPartners).Methods("GET")
	router.HandleFunc("/api/public/careers", h.ListCareers).Methods("GET")
	router.HandleFunc("/api/public/careers/{id}", h.GetCareer).Methods("GET")
	router.HandleFunc("/api/public/stats", h.Stats).Methods("GET")
}

// ListProducts handles GET /api/public/products. Only active products
// that are in stock show up, featured ones first.
func (h *PublicHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	products, err := h.products.FindAll(productdomain.Filter{
		Category:   q.Get("category"),
		Search:     q.Get("search"),
		Limit:      limit,
		Offset:     offset,
		PublicOnly: true,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list public products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"products": products, "count": len(products)},
	})
}

// GetProduct handles GET /api/public/products/{id}
func (h *PublicHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	product, err := h.products.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch product"})
		return
	}

	// Inactive products are not part of the public catalog
	if !product.IsActive {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// ListCategories handles GET /api/public/products/categories
func (h *PublicHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.Categories()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list public categories")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list categories"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"categories": categories}})
}

// ListBranches handles GET /api/public/branches
func (h *PublicHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branches.FindAll(branchdomain.Filter{Status: branchdomain.StatusActive})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list public branches")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list branches"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"branches": branches, "count": len(branches)},
	})
}

// ListTeam handles GET /api/public/team
func (h *PublicHandler) ListTeam(w http.ResponseWriter, r *http.Request) {
	members, err := h.team.FindAll(teamdomain.Filter{Status: teamdomain.StatusActive})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list public team")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list team"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"team": members, "count": len(members)},
	})
}

// ListPartners handles GET /api/public/partners
func (h *PublicHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.partners.FindAll(partnerdomain.Filter{Status: partnerdomain.StatusActive})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list public partners")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list partners"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"partners": partners, "count": len(partners)},
	})
}

// ListCareers handles GET /api/public/careers. Postings whose closing
// date has passed are filtered out even when still marked open.
func (h *PublicHandler) ListCareers(w http.ResponseWriter, r *http.Request) {
	careers, err := h.careers.FindAll(careerdomain.Filter{Status: careerdomain.StatusOpen})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list public careers")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list careers"})
		return
	}

	now := time.Now()
	open := careers[:0]
	for i := range careers {
		if !careers[i].CloseIfPast(now) {
			open = append(open, careers[i])
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"careers": open, "count": len(open)},
	})
}

// GetCareer handles GET /api/public/careers/{id}. Only open postings are
// visible; one past its closing date reads as not found even when the
// stored status has not been flipped yet.
func (h *PublicHandler) GetCareer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid career ID"})
		return
	}

	career, err := h.careers.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Job not found"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch job"})
		return
	}

	career.CloseIfPast(time.Now())
	if career.Status != careerdomain.StatusOpen {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Job not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: career})
}

// Stats handles GET /api/public/stats, the marketing-site counters
func (h *PublicHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := make(map[string]int64, 5)

	counters := []struct {
		key   string
		count func() (int64, error)
	}{
		{"products", h.products.CountActive},
		{"branches", func() (int64, error) { return h.branches.CountByStatus(branchdomain.StatusActive) }},
		{"team", func() (int64, error) { return h.team.CountByStatus(teamdomain.StatusActive) }},
		{"partners", func() (int64, error) { return h.partners.CountByStatus(partnerdomain.StatusActive) }},
		{"openPositions", func() (int64, error) { return h.careers.CountByStatus(careerdomain.StatusOpen) }},
	}

	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			logger.Logger.Error().Err(err).Str("counter", c.key).Msg("Failed to compute public stats")
			respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch stats"})
			return
		}
		stats[c.key] = n
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
