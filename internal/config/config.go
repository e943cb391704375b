// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultAdminPassword is the shared secret the gallery ships with. It must
// be overridden in production.
const DefaultAdminPassword = "db3ddb3dd5assetd5kit3d"

// Storage backends.
const (
	BackendValkey = "valkey"
	BackendMemory = "memory"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Durable storage for overrides and the asset structure
	StorageBackend    string // "valkey" or "memory"
	StorageNamespace  string
	StorageQuotaBytes int64

	// Admin mode
	AdminPassword string
	SessionTTL    time.Duration

	// Uploads and content
	MaxUploadBytes int64
	ImagesDir      string
	DefaultsFile   string // optional export file to boot from

	// BatchConcurrency bounds parallel decodes in a batch upload (0 = GOMAXPROCS).
	BatchConcurrency int

	PageCacheTTL time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if a value cannot be
// parsed or critical values are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		StorageBackend:   envOrDefault("STORAGE_BACKEND", BackendValkey),
		StorageNamespace: envOrDefault("STORAGE_NAMESPACE", "db3d"),

		AdminPassword: envOrDefault("ADMIN_PASSWORD", DefaultAdminPassword),

		ImagesDir:    envOrDefault("IMAGES_DIR", "images"),
		DefaultsFile: os.Getenv("DEFAULTS_FILE"),
	}

	var err error
	if cfg.StorageQuotaBytes, err = envInt64("STORAGE_QUOTA_BYTES", 5*1024*1024); err != nil {
		return nil, err
	}
	if cfg.MaxUploadBytes, err = envInt64("MAX_UPLOAD_BYTES", 256*1024*1024); err != nil {
		return nil, err
	}
	batch, err := envInt64("BATCH_CONCURRENCY", 0)
	if err != nil {
		return nil, err
	}
	cfg.BatchConcurrency = int(batch)
	if cfg.SessionTTL, err = envDuration("SESSION_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.PageCacheTTL, err = envDuration("PAGE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	switch cfg.StorageBackend {
	case BackendValkey, BackendMemory:
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendValkey, BackendMemory, cfg.StorageBackend)
	}
	if cfg.StorageQuotaBytes <= 0 {
		return nil, fmt.Errorf("STORAGE_QUOTA_BYTES must be positive, got %d", cfg.StorageQuotaBytes)
	}
	if cfg.BatchConcurrency < 0 {
		return nil, fmt.Errorf("BATCH_CONCURRENCY must not be negative, got %d", cfg.BatchConcurrency)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}

	if cfg.Env == "production" {
		if cfg.AdminPassword == DefaultAdminPassword {
			return nil, fmt.Errorf("ADMIN_PASSWORD must be set in production")
		}
		if cfg.StorageBackend == BackendMemory {
			return nil, fmt.Errorf("STORAGE_BACKEND=memory is not allowed in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SecureCookies reports whether cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.Env == "production"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt64 reads an integer environment variable.
func envInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// envDuration reads a duration environment variable such as "30m".
func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
