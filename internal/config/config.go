package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port     string
	LogLevel string

	// Storage backend for raw document bytes: "memory" or "s3"
	StorageBackend string

	// S3 / MinIO
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// Providers: "placeholder" by default, swappable for the real thing
	ExtractorProvider string
	AnalyzerProvider  string

	// Google Cloud (used when AnalyzerProvider is "gemini";
	// GOOGLE_APPLICATION_CREDENTIALS is read by the token source itself)
	ProjectID   string
	Location    string
	ProcessorID string
	ModelID     string

	// Upload limits
	MaxFileSize int64
}

const (
	ProviderPlaceholder = "placeholder"
	ProviderLocal       = "local"
	ProviderGemini      = "gemini"

	StorageMemory = "memory"
	StorageS3     = "s3"
)

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StorageBackend:    getEnv("STORAGE_BACKEND", StorageMemory),
		S3Endpoint:        getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:      getEnv("S3_BUCKET_NAME", "legal-ai-docs"),
		S3UseSSL:          getEnv("S3_USE_SSL", "false") == "true",
		ExtractorProvider: getEnv("EXTRACTOR_PROVIDER", ProviderPlaceholder),
		AnalyzerProvider:  getEnv("ANALYZER_PROVIDER", ProviderPlaceholder),
		ProjectID:         getEnv("PROJECT_ID", ""),
		Location:          getEnv("LOCATION", "us-central1"),
		ProcessorID:       getEnv("PROCESSOR_ID", ""),
		ModelID:           getEnv("MODEL_ID", "gemini-1.5-pro"),
		MaxFileSize:       getEnvInt64("MAX_FILE_SIZE_MB", 5) * 1024 * 1024,
	}

	switch cfg.StorageBackend {
	case StorageMemory, StorageS3:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	switch cfg.ExtractorProvider {
	case ProviderPlaceholder, ProviderLocal:
	default:
		return nil, fmt.Errorf("unknown EXTRACTOR_PROVIDER %q", cfg.ExtractorProvider)
	}

	switch cfg.AnalyzerProvider {
	case ProviderPlaceholder:
	case ProviderGemini:
		if cfg.ProjectID == "" {
			return nil, fmt.Errorf("PROJECT_ID is required when ANALYZER_PROVIDER is %q", ProviderGemini)
		}
	default:
		return nil, fmt.Errorf("unknown ANALYZER_PROVIDER %q", cfg.AnalyzerProvider)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}
