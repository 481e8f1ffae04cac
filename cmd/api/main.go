package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/app"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/config"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/provider/openai"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/storage"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/tokenizer"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/handler"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/middleware/auth"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/types"
)

func main() {
	logger := setupLogger()

	if err := config.EnsureDataDir(); err != nil {
		logger.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}
	if err := config.EnsureConfigFile(); err != nil {
		logger.Warn("failed to create config file", "error", err)
	}

	cfg := config.Load()

	// Storage (request logs, daily usage, settings)
	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// ADMIN_PASSWORD overrides whatever hash is stored
	if cfg.AdminPassword != "" {
		hash, err := storage.HashPassword(cfg.AdminPassword, storage.DefaultArgon2Params())
		if err != nil {
			logger.Error("failed to hash admin password", "error", err)
			os.Exit(1)
		}
		if err := store.SetAdminPasswordHash(hash); err != nil {
			logger.Error("failed to store admin password", "error", err)
			os.Exit(1)
		}
	}

	// Response cache, only allocated when caching is enabled
	var respCache *ristretto.Cache[string, *types.InferenceResponse]
	if cfg.CacheTTLSeconds > 0 {
		respCache, err = ristretto.NewCache(&ristretto.Config[string, *types.InferenceResponse]{
			NumCounters: 1e5,
			MaxCost:     10_000,
			BufferItems: 64,
		})
		if err != nil {
			logger.Error("failed to create response cache", "error", err)
			os.Exit(1)
		}
		defer respCache.Close()
	}

	// Small cache so admin requests skip argon2 verification
	adminCache, err := ristretto.NewCache(&ristretto.Config[string, *auth.VerifiedAdmin]{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
	})
	if err != nil {
		logger.Error("failed to create auth cache", "error", err)
		os.Exit(1)
	}
	defer adminCache.Close()

	prov := openai.New(cfg.BaseURL, cfg.APIKey,
		time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
	tok := tokenizer.New()

	repo := handler.NewRepo(cfg, prov, store, tok, respCache)
	router := app.NewRouter(repo, &app.RouterOptions{
		EnableWebUI: cfg.EnableWebUI,
		Logger:      logger,
		Storage:     store,
		AdminCache:  adminCache,
	})

	srv := app.NewServer(cfg, router, logger)

	printStartupBanner(cfg)

	// Shut down cleanly on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case sig := <-stop:
		logger.Info("signal received", "signal", sig.String())
		if err := srv.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}
}
