package admin

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/config"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/storage"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/handler/shared"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/version"
)

// AdminInfo handles GET /api/admin/info.
func (h *Handlers) AdminInfo(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.StartTime)

	// Get quick stats
	stats, _ := h.Storage.GetUsageStats(storage.StatsFilter{})

	info := map[string]any{
		"version":        version.Version,
		"go_version":     runtime.Version(),
		"uptime":         uptime.String(),
		"uptime_secs":    int64(uptime.Seconds()),
		"data_dir":       config.DataDir(),
		"model":          h.Config.Model,
		"has_openai_key": h.Config.HasAPIKey(),
		"cache_enabled":  h.Config.CacheTTLSeconds > 0,
	}
	if stats != nil {
		info["stats"] = map[string]any{
			"total_requests": stats.TotalRequests,
			"total_tokens":   stats.TotalTokens,
		}
	}

	shared.WriteJSON(w, info, http.StatusOK)
}

// ChangePasswordRequest is the request body for changing the admin password.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ChangeAdminPassword changes the admin password (PUT /api/admin/password).
func (h *Handlers) ChangeAdminPassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	password := strings.TrimSpace(req.NewPassword)
	if len(password) < 8 {
		shared.WriteJSONError(w, "password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hash, err := storage.HashPassword(password, storage.DefaultArgon2Params())
	if err != nil {
		shared.WriteJSONError(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	if err := h.Storage.SetAdminPasswordHash(hash); err != nil {
		shared.WriteJSONError(w, "failed to save password", http.StatusInternalServerError)
		return
	}

	shared.WriteJSON(w, map[string]string{"message": "password updated"}, http.StatusOK)
}
