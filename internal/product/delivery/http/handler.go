package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kipharma/pharmacy-platform/internal/product/domain"
	"github.com/kipharma/pharmacy-platform/internal/product/usecase/command"
	"github.com/kipharma/pharmacy-platform/internal/product/usecase/query"
	userhttp "github.com/kipharma/pharmacy-platform/internal/user/delivery/http"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
)

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler      *command.CreateProductHandler
	updateHandler      *command.UpdateProductHandler
	deleteHandler      *command.DeleteProductHandler
	adjustStockHandler *command.AdjustStockHandler

	// Query handlers
	getProductHandler     *query.GetProductHandler
	listHandler           *query.ListProductsHandler
	listCategoriesHandler *query.ListCategoriesHandler
	statsHandler          *query.GetStatsHandler

	repo           domain.ProductRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	totalProducts  prometheus.Gauge
}

// NewProductHandler creates a new product handler with CQRS pattern (manual DI for backwards compatibility)
func NewProductHandler(repo domain.ProductRepository) *ProductHandler {
	return newProductHandler(
		command.NewCreateProductHandler(repo),
		command.NewUpdateProductHandler(repo),
		command.NewDeleteProductHandler(repo),
		command.NewAdjustStockHandler(repo),
		query.NewGetProductHandler(repo),
		query.NewListProductsHandler(repo),
		query.NewListCategoriesHandler(repo),
		query.NewGetStatsHandler(repo),
		repo,
	)
}

// NewProductHandlerWithDI creates a new product handler using dependency injection
// This is used by Wire for automatic dependency injection
func NewProductHandlerWithDI(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	adjustStockHandler *command.AdjustStockHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	listCategoriesHandler *query.ListCategoriesHandler,
	statsHandler *query.GetStatsHandler,
	repo domain.ProductRepository,
) *ProductHandler {
	return newProductHandler(
		createHandler, updateHandler, deleteHandler, adjustStockHandler,
		getProductHandler, listHandler, listCategoriesHandler, statsHandler,
		repo,
	)
}

// newProductHandler is the internal constructor used by both manual and Wire DI
func newProductHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	adjustStockHandler *command.AdjustStockHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	listCategoriesHandler *query.ListCategoriesHandler,
	statsHandler *query.GetStatsHandler,
	repo domain.ProductRepository,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pharmacy_api_product_requests_total",
			Help: "Total number of product endpoint requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pharmacy_api_product_request_duration_seconds",
			Help:    "Duration of product endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Summary metric for percentile calculation (p50, p90, p95, p99)
	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "pharmacy_api_product_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pharmacy_api_total_products",
			Help: "Total number of products in the catalog",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(totalProducts)

	return &ProductHandler{
		createHandler:         createHandler,
		updateHandler:         updateHandler,
		deleteHandler:         deleteHandler,
		adjustStockHandler:    adjustStockHandler,
		getProductHandler:     getProductHandler,
		listHandler:           listHandler,
		listCategoriesHandler: listCategoriesHandler,
		statsHandler:          statsHandler,
		repo:                  repo,
		requestCounter:        requestCounter,
		requestLatency:        requestLatency,
		requestSummary:        requestSummary,
		totalProducts:         totalProducts,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	// Authenticated reads
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", userhttp.Authenticate(h.ListProducts))).Methods("GET")
	router.HandleFunc("/api/products/stats", h.metricsMiddleware("/api/products/stats", userhttp.Authenticate(h.GetStats))).Methods("GET")
	router.HandleFunc("/api/products/categories/list", h.metricsMiddleware("/api/products/categories/list", userhttp.Authenticate(h.ListCategories))).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", userhttp.Authenticate(h.GetProduct))).Methods("GET")

	// Admin mutations
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", userhttp.AdminOnly(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", userhttp.AdminOnly(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", userhttp.AdminOnly(h.DeleteProduct))).Methods("DELETE")

	// Managers may adjust stock within their own branch
	router.HandleFunc("/api/products/{id}/stock", h.metricsMiddleware("/api/products/{id}/stock", userhttp.ManagerOrAdmin(h.AdjustStock))).Methods("PATCH")
}

func (h *ProductHandler) refreshGauge() {
	if count, err := h.repo.Count(); err == nil {
		h.totalProducts.Set(float64(count))
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	principal, _ := userhttp.Principal(r)

	q := r.URL.Query()
	branchID, _ := strconv.ParseUint(q.Get("branch"), 10, 32)
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	products, err := h.listHandler.Handle(query.ListProductsQuery{
		Filter: domain.Filter{
			Status:   q.Get("status"),
			Category: q.Get("category"),
			BranchID: uint(branchID),
			Featured: q.Get("featured") == "true",
			Search:   q.Get("search"),
			Limit:    limit,
			Offset:   offset,
		},
		ActorRole:     principal.Role,
		ActorBranchID: principal.BranchID,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}

	h.refreshGauge()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": products,
			"count":    len(products),
			"limit":    limit,
			"offset":   offset,
		},
	})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	product, err := h.getProductHandler.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name              string     `json:"name"`
		Description       string     `json:"description"`
		Category          string     `json:"category"`
		Price             float64    `json:"price"`
		Stock             int        `json:"stock"`
		LowStockThreshold int        `json:"low_stock_threshold"`
		BranchID          uint       `json:"branch_id"`
		Image             string     `json:"image"`
		ImagePublicID     string     `json:"image_public_id"`
		SKU               string     `json:"sku"`
		Manufacturer      string     `json:"manufacturer"`
		ExpiryDate        *time.Time `json:"expiry_date"`
		Featured          bool       `json:"featured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		BranchID:          req.BranchID,
		Image:             req.Image,
		ImagePublicID:     req.ImagePublicID,
		SKU:               req.SKU,
		Manufacturer:      req.Manufacturer,
		ExpiryDate:        req.ExpiryDate,
		Featured:          req.Featured,
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Str("name", req.Name).Msg("Product rejected")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	h.refreshGauge()

	logger.Logger.Info().Uint("product_id", product.ID).Str("name", product.Name).Msg("Product created")
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Product created", Data: product})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Name              *string    `json:"name"`
		Description       *string    `json:"description"`
		Category          *string    `json:"category"`
		Price             *float64   `json:"price"`
		Stock             *int       `json:"stock"`
		LowStockThreshold *int       `json:"low_stock_threshold"`
		BranchID          *uint      `json:"branch_id"`
		Image             *string    `json:"image"`
		ImagePublicID     *string    `json:"image_public_id"`
		SKU               *string    `json:"sku"`
		Manufacturer      *string    `json:"manufacturer"`
		ExpiryDate        *time.Time `json:"expiry_date"`
		Featured          *bool      `json:"featured"`
		IsActive          *bool      `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		ProductID:         id,
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		Price:             req.Price,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		BranchID:          req.BranchID,
		Image:             req.Image,
		ImagePublicID:     req.ImagePublicID,
		SKU:               req.SKU,
		Manufacturer:      req.Manufacturer,
		ExpiryDate:        req.ExpiryDate,
		Featured:          req.Featured,
		IsActive:          req.IsActive,
	})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product updated", Data: product})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	product, err := h.deleteHandler.Handle(command.DeleteProductCommand{ProductID: id})
	if err != nil {
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	h.refreshGauge()

	logger.Logger.Info().Uint("product_id", id).Str("name", product.Name).Msg("Product deleted")
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted"})
}

// AdjustStock handles PATCH /api/products/{id}/stock. The body carries
// either an absolute stock or an adjustment with a direction; the
// adjustment wins when both are present.
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	principal, _ := userhttp.Principal(r)

	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Stock      *int   `json:"stock"`
		Adjustment *int   `json:"adjustment"`
		Type       string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.adjustStockHandler.Handle(r.Context(), command.AdjustStockCommand{
		ProductID:     id,
		Stock:         req.Stock,
		Adjustment:    req.Adjustment,
		Type:          req.Type,
		ActorRole:     principal.Role,
		ActorBranchID: principal.BranchID,
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Uint("product_id", id).Msg("Stock adjustment rejected")
		respondJSON(w, apperrors.HTTPStatus(err), Response{Success: false, Error: apperrors.Message(err)})
		return
	}

	logger.Logger.Info().
		Uint("product_id", product.ID).
		Int("stock", product.Stock).
		Str("status", product.Status).
		Str("actor_role", principal.Role).
		Msg("Stock adjusted")

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Stock updated", Data: product})
}

// ListCategories handles GET /api/products/categories/list
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategoriesHandler.Handle()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list categories")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list categories"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"categories": categories}})
}

// GetStats handles GET /api/products/stats
func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute product stats")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to compute product stats"})
		return
	}

	h.totalProducts.Set(float64(stats.Total))

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
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
