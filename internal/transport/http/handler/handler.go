package handler

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/config"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/provider"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/storage"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/tokenizer"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/handler/admin"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/handler/infer"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/handler/infra"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/types"
)

// Repo composes all domain-specific handlers.
type Repo struct {
	Infer *infer.Handlers
	Admin *admin.Handlers
	Infra *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(cfg *config.Config, prov provider.Provider, store storage.Storage, tok tokenizer.Tokenizer, cache *ristretto.Cache[string, *types.InferenceResponse]) *Repo {
	startTime := time.Now()
	return &Repo{
		Infer: infer.New(cfg, prov, store, tok, cache),
		Admin: admin.New(cfg, store, startTime),
		Infra: infra.New(cfg, startTime),
	}
}
