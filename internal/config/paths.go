package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the gpt-proxy data directory.
// - Windows: %APPDATA%\gpt-proxy
// - Other OS: ~/.gpt-proxy
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gpt-proxy")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".gpt-proxy"
	}
	return filepath.Join(home, ".gpt-proxy")
}

// ConfigPath returns the path to the config file (~/.gpt-proxy/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// DBPath returns the path to the SQLite database file.
func DBPath() string {
	return filepath.Join(DataDir(), "gpt-proxy.db")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
