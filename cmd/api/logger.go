package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/config"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/version"
)

func setupLogger() *slog.Logger {
	// Use sensible defaults: info level, text format
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

func printStartupBanner(cfg *config.Config) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "GPT Proxy %s\n", version.Version)
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "Model:      %s\n", cfg.Model)
	fmt.Fprintf(os.Stderr, "Health:     http://localhost%s/health\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Inference:  http://localhost%s/infer\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Admin API:  http://localhost%s/api/admin/\n", cfg.ServerPort)
	if cfg.EnableWebUI {
		fmt.Fprintf(os.Stderr, "Frontend:   http://localhost%s/\n", cfg.ServerPort)
	}
	fmt.Fprintf(os.Stderr, "Data:       %s\n", config.DataDir())
	if !cfg.HasAPIKey() {
		fmt.Fprintf(os.Stderr, "WARNING:    OPENAI_API_KEY is not set, /infer will fail\n")
	}
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "\n")
}
