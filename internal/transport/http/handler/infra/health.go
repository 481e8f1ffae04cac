package infra

import (
	"net/http"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/handler/shared"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/types"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/version"
)

// HealthCheck handles GET /health. It reports the configured model and
// whether an upstream credential is present, without calling upstream.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, types.HealthResponse{
		Status:       "ok",
		Model:        h.Config.Model,
		HasOpenAIKey: h.Config.HasAPIKey(),
	}, http.StatusOK)
}

// RootStatus returns JSON status and version information at / when the
// bundled frontend is disabled.
func (h *Handlers) RootStatus(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, map[string]any{
		"name":    "gpt-proxy",
		"version": version.Version,
		"status":  "running",
		"model":   h.Config.Model,
		"health":  "/health",
		"infer":   "/infer",
		"admin":   "/api/admin",
	}, http.StatusOK)
}
