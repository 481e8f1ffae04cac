package config

import (
	"os"
	"strconv"
)

// DefaultModel is used when neither MODEL nor the config file name one.
const DefaultModel = "gpt-4o-mini"

// DefaultBaseURL is the OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// Config holds application configuration loaded from environment and file.
// Priority: Env vars → config.toml → defaults
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":8080")
	ServerPort string

	// Model is the upstream model identifier sent with every inference call
	Model string

	// APIKey is the upstream OpenAI credential. May be empty; inference
	// requests fail until it is set.
	APIKey string

	// BaseURL is the upstream API root (override for tests / gateways)
	BaseURL string

	// EnableWebUI enables the bundled frontend at /
	EnableWebUI bool

	// RequestTimeoutSeconds bounds a single upstream inference call
	RequestTimeoutSeconds int

	// CacheTTLSeconds is the inference response cache TTL. 0 disables caching.
	CacheTTLSeconds int

	// AdminPassword protects the admin API when non-empty
	AdminPassword string

	// DBPath is the SQLite database file location
	DBPath string
}

// Load reads configuration from file and environment variables.
// Environment variables override file config values.
func Load() *Config {
	fileConfig, _ := LoadFile() // Ignore error, use defaults

	cfg := &Config{
		ServerPort:            getEnvOrFile("SERVER_PORT", fileConfig.ServerPort, ":8080"),
		Model:                 getEnvOrFile("MODEL", fileConfig.Model, DefaultModel),
		APIKey:                os.Getenv("OPENAI_API_KEY"),
		BaseURL:               getEnvOrFile("OPENAI_BASE_URL", fileConfig.BaseURL, DefaultBaseURL),
		EnableWebUI:           getEnvBoolOrFile("ENABLE_WEB_UI", fileConfig.EnableWebUI, true),
		RequestTimeoutSeconds: getEnvIntOrFile("REQUEST_TIMEOUT_SECONDS", fileConfig.RequestTimeoutSeconds, 180),
		CacheTTLSeconds:       getEnvIntOrFile("CACHE_TTL_SECONDS", fileConfig.CacheTTLSeconds, 0),
		AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
		DBPath:                getEnvOrFile("DB_PATH", fileConfig.DBPath, DBPath()),
	}

	// Cloud Run provides the port as a bare number in PORT
	if port := os.Getenv("PORT"); port != "" {
		cfg.ServerPort = ":" + port
	}

	return cfg
}

// HasAPIKey reports whether an upstream credential is configured.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvBoolOrFile returns env bool, file bool, or default (in priority order)
func getEnvBoolOrFile(key string, fileValue *bool, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

// getEnvIntOrFile returns env int, file int, or default (in priority order)
func getEnvIntOrFile(key string, fileValue *int, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}
