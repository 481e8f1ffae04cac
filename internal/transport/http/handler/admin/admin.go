// Package admin implements the administrative HTTP API under /api/admin.
package admin

import (
	"time"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/config"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/storage"
)

// Handlers holds the dependencies for admin HTTP handlers.
type Handlers struct {
	Config    *config.Config
	Storage   storage.Storage
	StartTime time.Time
}

// New creates a new instance of admin handlers.
func New(cfg *config.Config, store storage.Storage, startTime time.Time) *Handlers {
	return &Handlers{
		Config:    cfg,
		Storage:   store,
		StartTime: startTime,
	}
}
