package config

import (
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/kipharma/pharmacy-platform/pkg/database"
)

// Config holds everything the API and workers read from the environment
type Config struct {
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"pharmacy-api"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"pharmacydb"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`

	CORSOrigin string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
}

// Load parses the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsDevelopment reports whether we run in development mode
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Database returns the database connection config
func (c Config) Database() database.Config {
	return database.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSSLMode,
	}
}

// Brokers returns the Kafka broker list
func (c Config) Brokers() []string {
	return strings.Split(c.KafkaBrokers, ",")
}
