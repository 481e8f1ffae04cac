package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Clear relevant env vars for this test
	for _, key := range []string{"SERVER_PORT", "PORT", "MODEL", "OPENAI_API_KEY", "OPENAI_BASE_URL", "ENABLE_WEB_UI", "REQUEST_TIMEOUT_SECONDS", "CACHE_TTL_SECONDS", "ADMIN_PASSWORD", "DB_PATH"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerPort != ":8080" {
		t.Errorf("expected default port :8080, got %q", cfg.ServerPort)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("expected default model %q, got %q", DefaultModel, cfg.Model)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL %q, got %q", DefaultBaseURL, cfg.BaseURL)
	}
	if !cfg.EnableWebUI {
		t.Error("expected web UI enabled by default")
	}
	if cfg.RequestTimeoutSeconds != 180 {
		t.Errorf("expected default timeout 180, got %d", cfg.RequestTimeoutSeconds)
	}
	if cfg.CacheTTLSeconds != 0 {
		t.Errorf("expected caching disabled by default, got TTL %d", cfg.CacheTTLSeconds)
	}
	if cfg.HasAPIKey() {
		t.Error("expected no API key when env is empty")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MODEL", "gpt-4o")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("PORT", "")

	cfg := Load()

	if cfg.Model != "gpt-4o" {
		t.Errorf("expected model gpt-4o, got %q", cfg.Model)
	}
	if !cfg.HasAPIKey() {
		t.Error("expected API key to be set")
	}
	if cfg.ServerPort != ":9090" {
		t.Errorf("expected port :9090, got %q", cfg.ServerPort)
	}
	if cfg.CacheTTLSeconds != 60 {
		t.Errorf("expected cache TTL 60, got %d", cfg.CacheTTLSeconds)
	}
}

func TestCloudRunPort(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("PORT", "8081")

	cfg := Load()

	// Cloud Run's PORT wins over SERVER_PORT
	if cfg.ServerPort != ":8081" {
		t.Errorf("expected port :8081, got %q", cfg.ServerPort)
	}
}

func TestGetEnvIntOrFile(t *testing.T) {
	t.Setenv("TEST_INT_KEY", "")

	fileVal := 42
	if got := getEnvIntOrFile("TEST_INT_KEY", &fileVal, 7); got != 42 {
		t.Errorf("expected file value 42, got %d", got)
	}
	if got := getEnvIntOrFile("TEST_INT_KEY", nil, 7); got != 7 {
		t.Errorf("expected default 7, got %d", got)
	}

	t.Setenv("TEST_INT_KEY", "not-a-number")
	if got := getEnvIntOrFile("TEST_INT_KEY", nil, 7); got != 7 {
		t.Errorf("expected default 7 for unparsable env, got %d", got)
	}
}
