// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"finledger/pkg/db"
)

// Storage backend selectors.
const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort     string
	StorageBackend string
	DB             db.Config
	JWTSecret      string
	JWTExpiresIn   time.Duration
}

// LoadConfig loads configuration from environment variables, with an
// optional .env file for local development. It returns an AppConfig
// instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load() // Missing .env is fine; env vars take over.

	serverPort := getEnv("SERVER_PORT", "8080")

	storageBackend := getEnv("STORAGE_BACKEND", StorageBackendPostgres)
	if storageBackend != StorageBackendPostgres && storageBackend != StorageBackendMemory {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: must be %q or %q",
			storageBackend, StorageBackendPostgres, StorageBackendMemory)
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	jwtExpiresIn, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}

	return &AppConfig{
		ServerPort:     serverPort,
		StorageBackend: storageBackend,
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "finledger"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret"),
		JWTExpiresIn: jwtExpiresIn,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
