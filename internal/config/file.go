package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	ServerPort            string `toml:"server_port"`
	Model                 string `toml:"model"`
	BaseURL               string `toml:"base_url"`
	EnableWebUI           *bool  `toml:"enable_web_ui"`
	RequestTimeoutSeconds *int   `toml:"request_timeout_seconds"`
	CacheTTLSeconds       *int   `toml:"cache_ttl_seconds"`
	DBPath                string `toml:"db_path"`
}

// LoadFile loads configuration from the TOML file.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile() (*FileConfig, error) {
	cfg := &FileConfig{}

	path := ConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	// If config already exists, do nothing
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	// Ensure directory exists
	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# gpt-proxy Configuration
# Environment variables take priority over this file.
# The OPENAI_API_KEY and ADMIN_PASSWORD secrets are environment-only.

# server_port = ":8080"
# model = "gpt-4o-mini"
# base_url = "https://api.openai.com/v1"
# enable_web_ui = true
# request_timeout_seconds = 180

# Cache identical inference requests for this many seconds (0 = off)
# cache_ttl_seconds = 0
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
