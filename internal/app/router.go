package app

import (
	"log/slog"
	"net/http"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/storage"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/handler"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/middleware"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/middleware/auth"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/web"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	EnableWebUI bool
	Logger      *slog.Logger
	Storage     storage.Storage
	AdminCache  *ristretto.Cache[string, *auth.VerifiedAdmin]
}

// NewRouter creates and configures the HTTP router with all application
// routes. Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	mux := http.NewServeMux()

	// Public routes (no auth)
	mux.HandleFunc("GET /health", repo.Infra.HealthCheck)
	mux.HandleFunc("POST /infer", repo.Infer.Infer)

	// Admin API routes (require admin auth)
	registerAdminRoutes(mux, repo, opts)

	// Root serves the bundled frontend when enabled, JSON status otherwise
	if opts.EnableWebUI {
		mux.Handle("GET /", web.Handler())
	} else {
		mux.HandleFunc("GET /", repo.Infra.RootStatus)
	}

	// Apply middleware chain (order: outer to inner)
	var h http.Handler = mux

	if opts.Logger != nil {
		h = middleware.RequestLogger(opts.Logger)(h)
	}

	h = middleware.RequestID(h)
	h = middleware.CORS(h)

	return h
}

// registerAdminRoutes adds all admin API routes to the router.
func registerAdminRoutes(mux *http.ServeMux, repo *handler.Repo, opts *RouterOptions) {
	adminAuth := auth.AdminAuth(opts.Storage, opts.AdminCache)

	withAuth := func(h http.HandlerFunc) http.Handler {
		return adminAuth(h)
	}

	// Usage and logs
	mux.Handle("GET /api/admin/usage", withAuth(repo.Admin.GetUsageStats))
	mux.Handle("GET /api/admin/usage/daily", withAuth(repo.Admin.GetDailyUsage))
	mux.Handle("GET /api/admin/logs", withAuth(repo.Admin.GetRequestLogs))
	mux.Handle("DELETE /api/admin/logs", withAuth(repo.Admin.DeleteRequestLogs))

	// Password management
	mux.Handle("PUT /api/admin/password", withAuth(repo.Admin.ChangeAdminPassword))

	// System info
	mux.Handle("GET /api/admin/info", withAuth(repo.Admin.AdminInfo))
}
