package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/isdelr/events-hub-be/internal/database"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds the application configuration.
type Config struct {
	ServerPort         int
	ProjectID          string
	CredentialsFile    string // Optional service-account key; ADC is used when empty
	DatabaseID         string
	EventsCollection   string
	StoreTimeout       time.Duration // Zero disables the per-call deadline
	CORSAllowedOrigins []string
	LogLevel           string
	ShutdownTimeout    time.Duration
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	storeTimeout, err := time.ParseDuration(getEnv("STORE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT: %w", err)
	}
	if storeTimeout < 0 {
		return nil, errors.New("invalid STORE_TIMEOUT: must not be negative")
	}

	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		projectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if projectID == "" {
		return nil, errors.New("FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT must be set")
	}

	collection := getEnv("EVENTS_COLLECTION", "events")
	if !database.ValidCollectionID(collection) {
		return nil, fmt.Errorf("invalid EVENTS_COLLECTION %q: must be a single non-empty path segment", collection)
	}

	logLevel := getEnv("LOG_LEVEL", "info")
	if _, err := zerolog.ParseLevel(logLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return &Config{
		ServerPort:         port,
		ProjectID:          projectID,
		CredentialsFile:    getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		DatabaseID:         getEnv("FIRESTORE_DATABASE_ID", "(default)"),
		EventsCollection:   collection,
		StoreTimeout:       storeTimeout,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           logLevel,
		ShutdownTimeout:    shutdownTimeout,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
