package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	branchhttp "github.com/kipharma/pharmacy-platform/internal/branch/delivery/http"
	branchrepo "github.com/kipharma/pharmacy-platform/internal/branch/repository"
	careerhttp "github.com/kipharma/pharmacy-platform/internal/career/delivery/http"
	careerrepo "github.com/kipharma/pharmacy-platform/internal/career/repository"
	"github.com/kipharma/pharmacy-platform/internal/config"
	notifhttp "github.com/kipharma/pharmacy-platform/internal/notification/delivery/http"
	notifrepo "github.com/kipharma/pharmacy-platform/internal/notification/repository"
	notifcommand "github.com/kipharma/pharmacy-platform/internal/notification/usecase/command"
	partnerhttp "github.com/kipharma/pharmacy-platform/internal/partner/delivery/http"
	partnerrepo "github.com/kipharma/pharmacy-platform/internal/partner/repository"
	producthttp "github.com/kipharma/pharmacy-platform/internal/product/delivery/http"
	productrepo "github.com/kipharma/pharmacy-platform/internal/product/repository"
	publichttp "github.com/kipharma/pharmacy-platform/internal/public/delivery/http"
	settingshttp "github.com/kipharma/pharmacy-platform/internal/settings/delivery/http"
	settingsdomain "github.com/kipharma/pharmacy-platform/internal/settings/domain"
	settingsrepo "github.com/kipharma/pharmacy-platform/internal/settings/repository"
	teamhttp "github.com/kipharma/pharmacy-platform/internal/team/delivery/http"
	teamrepo "github.com/kipharma/pharmacy-platform/internal/team/repository"
	userhttp "github.com/kipharma/pharmacy-platform/internal/user/delivery/http"
	userdomain "github.com/kipharma/pharmacy-platform/internal/user/domain"
	userrepo "github.com/kipharma/pharmacy-platform/internal/user/repository"
	"github.com/kipharma/pharmacy-platform/kafka"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
	"github.com/kipharma/pharmacy-platform/pkg/database"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
	"github.com/kipharma/pharmacy-platform/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("pharmacy-api", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting pharmacy API")

	// Tracing
	tp, err := tracing.InitTracer(cfg.ServiceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	// Database
	db, err := database.NewGormConnection(cfg.Database())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Repositories and migrations
	products := productrepo.NewGormProductRepositoryWithTracing(db)
	branches := branchrepo.NewGormBranchRepository(db)
	users := userrepo.NewGormUserRepository(db)
	notifications := notifrepo.NewGormNotificationRepository(db)
	partners := partnerrepo.NewGormPartnerRepository(db)
	team := teamrepo.NewGormTeamRepository(db)
	careers := careerrepo.NewGormCareerRepository(db)
	settings := settingsrepo.NewGormSettingRepository(db)

	migrators := []interface{ AutoMigrate() error }{
		products, branches, users, notifications, partners, team, careers, settings,
	}
	for _, m := range migrators {
		if err := m.AutoMigrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	seedDefaults(settings, users)

	// Kafka publisher, optional: the API runs without a broker, alerts
	// just stay local
	var alertPublisher notifcommand.AlertPublisher
	if publisher, err := kafka.NewPublisher(cfg.Brokers()); err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka unavailable, low stock events disabled")
	} else {
		alertPublisher = publisher
		defer publisher.Close()
	}

	// Handlers
	router := mux.NewRouter()

	userHandler := userhttp.NewUserHandler(users, settings)
	userHandler.RegisterRoutes(router)

	productHandler := producthttp.NewProductHandler(products)
	productHandler.RegisterRoutes(router)

	branchHandler := branchhttp.NewBranchHandler(branches, products, users)
	branchHandler.RegisterRoutes(router)

	notifHandler := notifhttp.NewNotificationHandler(notifications, products, branches, alertPublisher, users)
	notifHandler.RegisterRoutes(router)

	partnerhttp.NewPartnerHandler(partners).RegisterRoutes(router)
	teamhttp.NewTeamHandler(team).RegisterRoutes(router)
	careerhttp.NewCareerHandler(careers).RegisterRoutes(router)
	settingshttp.NewSettingsHandler(settings).RegisterRoutes(router)

	publichttp.NewPublicHandler(products, branches, team, partners, careers).RegisterRoutes(router)

	producthttp.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"down"}`))
			return
		}
		w.Write([]byte(`{"status":"up"}`))
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(c.Handler(router), "pharmacy-api")

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

// seedDefaults inserts the well-known settings and a default admin
// account on first boot
func seedDefaults(settings *settingsrepo.GormSettingRepository, users *userrepo.GormUserRepository) {
	err := settings.SeedDefaults(map[string]string{
		settingsdomain.KeyPortalAccessCode: "shami",
		settingsdomain.KeyCompanyName:      "Kipharma",
		settingsdomain.KeyCompanyEmail:     "info@kipharma.com",
		settingsdomain.KeyCompanyPhone:     "+250 788 000 000",
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed settings")
	}

	admins, err := users.CountByRole(auth.RoleAdmin)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to count admins")
	}
	if admins > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to hash admin password")
	}

	admin := &userdomain.User{
		Name:     "Administrator",
		Email:    "admin@kipharma.com",
		Password: hash,
		Role:     auth.RoleAdmin,
		Status:   userdomain.StatusActive,
	}
	if err := users.Create(admin); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed admin user")
	}

	logger.Logger.Info().Str("email", admin.Email).Msg("Default admin created")
}
