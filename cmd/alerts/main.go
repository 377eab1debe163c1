package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kipharma/pharmacy-platform/internal/config"
	"github.com/kipharma/pharmacy-platform/kafka"
	"github.com/kipharma/pharmacy-platform/pkg/database"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
	"github.com/kipharma/pharmacy-platform/pkg/tracing"
)

const createAlertLog = `
CREATE TABLE IF NOT EXISTS alert_log (
	id BIGSERIAL PRIMARY KEY,
	event_id TEXT NOT NULL UNIQUE,
	notification_id BIGINT NOT NULL,
	product_id BIGINT NOT NULL,
	product_name TEXT NOT NULL,
	branch_id BIGINT,
	branch_name TEXT,
	manager_id BIGINT,
	manager_name TEXT,
	current_stock INT NOT NULL,
	priority TEXT NOT NULL,
	raised_at TIMESTAMPTZ NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertAlert = `
INSERT INTO alert_log (
	event_id, notification_id, product_id, product_name,
	branch_id, branch_name, manager_id, manager_name,
	current_stock, priority, raised_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (event_id) DO NOTHING`

var (
	alertsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pharmacy_alerts_recorded_total",
		Help: "Low stock alert events written to the alert log",
	})
	alertsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pharmacy_alerts_failed_total",
		Help: "Low stock alert events that could not be recorded",
	})
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("pharmacy-alerts", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	serviceName := "pharmacy-alerts"
	logger.Init(serviceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", cfg.Environment).
		Msg("Starting alerts worker")

	tp, err := tracing.InitTracer(serviceName)
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

	db, err := database.NewPostgresConnection(cfg.Database())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if _, err := db.Exec(createAlertLog); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create alert_log table")
	}

	prometheus.MustRegister(alertsRecorded, alertsFailed)

	consumer, err := kafka.NewConsumer(cfg.Brokers(), "pharmacy-alerts", []string{kafka.TopicLowStockAlerts})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeLowStockAlert, func(ctx context.Context, event kafka.LowStockAlertEvent) error {
		return recordAlert(ctx, db, event)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	// Metrics endpoint
	metricsPort := os.Getenv("METRICS_PORT")
	if metricsPort == "" {
		metricsPort = "9091"
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Logger.Info().Str("port", metricsPort).Msg("Metrics server started")
		if err := http.ListenAndServe(":"+metricsPort, mux); err != nil {
			logger.Logger.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down alerts worker...")
}

func recordAlert(ctx context.Context, db *sql.DB, event kafka.LowStockAlertEvent) error {
	_, err := db.ExecContext(ctx, insertAlert,
		event.EventID,
		event.NotificationID,
		event.ProductID,
		event.ProductName,
		event.BranchID,
		event.BranchName,
		event.ManagerID,
		event.ManagerName,
		event.CurrentStock,
		event.Priority,
		event.Timestamp,
	)
	if err != nil {
		alertsFailed.Inc()
		return err
	}

	alertsRecorded.Inc()
	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("product", event.ProductName).
		Int("current_stock", event.CurrentStock).
		Msg("Alert recorded")
	return nil
}
