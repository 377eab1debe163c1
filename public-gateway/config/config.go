package config

import (
	"os"
	"time"
)

// GatewayConfig holds the public gateway configuration. The gateway
// fronts a single upstream, the pharmacy API, and only exposes its
// public routes.
type GatewayConfig struct {
	Port        string
	APIBaseURL  string
	HealthCheck string
	Timeout     time.Duration
	CacheTTL    time.Duration
}

// LoadConfig loads the gateway configuration
func LoadConfig() *GatewayConfig {
	return &GatewayConfig{
		Port:        getEnv("GATEWAY_PORT", "8000"),
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8080"),
		HealthCheck: "/health",
		Timeout:     30 * time.Second,
		CacheTTL:    5 * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
