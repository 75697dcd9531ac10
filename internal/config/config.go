package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration.
// The struct is populated from environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	OMS      OMSConfig
	Catalog  CatalogConfig
	Mail     MailConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// OMSConfig points at the order management system (order search + detail).
type OMSConfig struct {
	BaseURL   string
	AuthToken string
	Timeout   time.Duration
}

// CatalogConfig points at the catalog system (SKU + product variations feed).
type CatalogConfig struct {
	BaseURL   string
	AuthToken string
	Timeout   time.Duration
}

// MailConfig points at the message center used for confirmation emails.
type MailConfig struct {
	BaseURL   string
	AuthToken string
	From      string
	Timeout   time.Duration
}

type AuthConfig struct {
	JWTSecret string
	// AppKeyHash is the bcrypt hash machine callers are checked against.
	AppKeyHash string
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Return App API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "returnapp"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		OMS: OMSConfig{
			BaseURL:   getEnv("OMS_BASE_URL", "http://localhost:9001"),
			AuthToken: getEnv("OMS_AUTH_TOKEN", ""),
			Timeout:   time.Duration(getEnvInt("OMS_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Catalog: CatalogConfig{
			BaseURL:   getEnv("CATALOG_BASE_URL", "http://localhost:9002"),
			AuthToken: getEnv("CATALOG_AUTH_TOKEN", ""),
			Timeout:   time.Duration(getEnvInt("CATALOG_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Mail: MailConfig{
			BaseURL:   getEnv("MAIL_BASE_URL", "http://localhost:9003"),
			AuthToken: getEnv("MAIL_AUTH_TOKEN", ""),
			From:      getEnv("MAIL_FROM", "noreply@returnapp.dev"),
			Timeout:   time.Duration(getEnvInt("MAIL_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AppKeyHash: getEnv("APP_KEY_HASH", ""),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config is usable for the current environment.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Auth.JWTSecret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.OMS.AuthToken == "" {
			fmt.Println("WARNING: OMS auth token not set - purchase history lookups will fail")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
