package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingAPIKey    string
	VectorSize         int

	DBPath     string
	StorageDir string

	VectorBackend    string // "qdrant" or "pgvector"
	QdrantURL        string
	QdrantCollection string
	PostgresURL      string

	IndexWorkers      int
	ReconcileInterval int // seconds, 0 disables the background pass
	PendingCutoff     int // seconds a record may stay pending before reconciliation touches it
	MaxUploadBytes    int64

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded
// automatically. Environment variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up looking for a .env next to go.mod, same as a dev checkout
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "clip-vit-base-patch32"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", "dummy-key"),
		DBPath:             getEnv("DB_PATH", "./data/imagesearch.db"),
		StorageDir:         getEnv("STORAGE_DIR", "./data/images"),
		VectorBackend:      strings.ToLower(getEnv("VECTOR_BACKEND", "qdrant")),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "images"),
		PostgresURL:        getEnv("POSTGRES_URL", ""),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	// VECTOR_SIZE must match the output size of the embedding model.
	// CLIP ViT-B/32 produces 512-dimensional vectors; if the model changes,
	// the vector collection must be recreated with the new size.
	vectorSizeStr := getEnv("VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("VECTOR_SIZE must be greater than 0")
	}
	cfg.VectorSize = vectorSize

	switch cfg.VectorBackend {
	case "qdrant":
	case "pgvector":
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("POSTGRES_URL is required when VECTOR_BACKEND=pgvector")
		}
	default:
		return nil, fmt.Errorf("VECTOR_BACKEND must be \"qdrant\" or \"pgvector\", got %q", cfg.VectorBackend)
	}

	cfg.IndexWorkers, err = getEnvInt("INDEX_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	if cfg.IndexWorkers <= 0 {
		return nil, fmt.Errorf("INDEX_WORKERS must be greater than 0")
	}

	cfg.ReconcileInterval, err = getEnvInt("RECONCILE_INTERVAL_SECONDS", 300)
	if err != nil {
		return nil, err
	}
	if cfg.ReconcileInterval < 0 {
		return nil, fmt.Errorf("RECONCILE_INTERVAL_SECONDS must not be negative")
	}
	cfg.PendingCutoff, err = getEnvInt("PENDING_CUTOFF_SECONDS", 600)
	if err != nil {
		return nil, err
	}
	if cfg.PendingCutoff <= 0 {
		return nil, fmt.Errorf("PENDING_CUTOFF_SECONDS must be greater than 0")
	}

	maxUpload, err := getEnvInt("MAX_UPLOAD_BYTES", 10*1024*1024)
	if err != nil {
		return nil, err
	}
	if maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be greater than 0")
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	cfg.LogLevel = parseLogLevel(getEnv("LOG_LEVEL", "info"))

	// Create data directories if they don't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.StorageDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return parsed, nil
}

// parseLogLevel converts a level string to slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
