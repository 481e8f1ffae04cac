// Package auth provides authentication middleware for the admin API.
package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/storage"
)

// verificationTTL bounds how long a positive argon2 check is remembered.
const verificationTTL = 5 * time.Minute

// VerifiedAdmin holds a validated admin token for caching.
type VerifiedAdmin struct {
	Hash       string
	ValidUntil time.Time
}

// AdminAuth middleware protects admin routes using the stored password hash.
// When no password has been configured the routes stay open (localhost-first
// design). A ristretto cache avoids re-running argon2 on every request.
func AdminAuth(store storage.Storage, cache *ristretto.Cache[string, *VerifiedAdmin]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hash, err := store.GetAdminPasswordHash()
			if err != nil {
				writeUnauthorized(w, "server error")
				return
			}
			if hash == "" {
				// No password configured: admin API is open
				next.ServeHTTP(w, r)
				return
			}

			// Extract Bearer token
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeUnauthorized(w, "authorization required")
				return
			}
			password := strings.TrimPrefix(auth, "Bearer ")

			// Cached positive verification for the same hash skips argon2
			if cache != nil {
				if cached, found := cache.Get(cacheKey(password)); found {
					if cached.Hash == hash && time.Now().Before(cached.ValidUntil) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			valid, err := storage.VerifyPassword(password, hash)
			if err != nil || !valid {
				writeUnauthorized(w, "invalid credentials")
				return
			}

			if cache != nil {
				cache.Set(cacheKey(password), &VerifiedAdmin{
					Hash:       hash,
					ValidUntil: time.Now().Add(verificationTTL),
				}, 1)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// cacheKey namespaces the token in the shared cache.
func cacheKey(password string) string {
	return "admin:" + password
}

// writeUnauthorized writes a JSON 401 response.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"message": message,
			"type":    "authentication_error",
		},
	})
}
