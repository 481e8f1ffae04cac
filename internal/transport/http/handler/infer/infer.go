// Package infer implements the POST /infer endpoint.
package infer

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/config"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/provider"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/storage"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/tokenizer"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/handler/shared"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/transport/http/middleware"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/types"
)

// tokenCountTimeout is the maximum time to wait for token counting before
// logging with whatever the upstream reported.
const tokenCountTimeout = 100 * time.Millisecond

// Handlers holds the dependencies for the inference HTTP handler.
type Handlers struct {
	Config    *config.Config
	Provider  provider.Provider
	Storage   storage.Storage
	Tokenizer tokenizer.Tokenizer
	Cache     *ristretto.Cache[string, *types.InferenceResponse]
}

// New creates a new instance of inference handlers.
func New(cfg *config.Config, prov provider.Provider, store storage.Storage, tok tokenizer.Tokenizer, cache *ristretto.Cache[string, *types.InferenceResponse]) *Handlers {
	return &Handlers{
		Config:    cfg,
		Provider:  prov,
		Storage:   store,
		Tokenizer: tok,
		Cache:     cache,
	}
}

// cacheTTL returns the configured response cache TTL, 0 when disabled.
func (h *Handlers) cacheTTL() time.Duration {
	if h.Cache == nil || h.Config.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(h.Config.CacheTTLSeconds) * time.Second
}

// Infer handles POST /infer: validates the payload, forwards it to the
// upstream model and relays the textual output.
func (h *Handlers) Infer(w http.ResponseWriter, r *http.Request) {
	// Reuse the id the middleware assigned so the X-Request-ID header and
	// the request_logs row match.
	requestID := middleware.GetRequestID(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}
	startTime := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	var req types.InferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			types.WriteError(w, http.StatusRequestEntityTooLarge,
				types.ErrPayloadTooLarge("request body too large"))
			return
		}
		types.WriteError(w, http.StatusBadRequest,
			types.ErrInvalidRequest("invalid request format"))
		return
	}

	input, imageCount, err := BuildInput(&req)
	if err != nil {
		h.writeInputError(w, err)
		return
	}

	// Serve identical prompts from cache when enabled
	ttl := h.cacheTTL()
	key := ""
	if ttl > 0 {
		key = cacheKey(h.Config.Model, &req)
		if cached, found := h.Cache.Get(key); found {
			w.Header().Set("X-Cache", "HIT")
			shared.WriteJSON(w, cached, http.StatusOK)
			// No upstream usage block on a hit, so count the prompt here
			go func() {
				prompt := 0
				if h.Tokenizer != nil {
					if tokens, err := h.Tokenizer.CountInput(&req, h.Config.Model); err == nil {
						prompt = tokens
					}
				}
				h.logInference(requestID, imageCount, http.StatusOK, "", nil, prompt, true, startTime)
			}()
			return
		}
		w.Header().Set("X-Cache", "MISS")
	}

	// The credential is only required once we actually call upstream,
	// so a keyless deployment still serves /health.
	if !h.Config.HasAPIKey() {
		types.WriteError(w, http.StatusInternalServerError,
			types.ErrServer("OPENAI_API_KEY is not configured"))
		go h.logInference(requestID, imageCount, http.StatusInternalServerError,
			"OPENAI_API_KEY is not configured", nil, 0, false, startTime)
		return
	}

	// Count prompt tokens in the background; the upstream usage block is
	// preferred when it arrives.
	tokensChan := make(chan int, 1)
	go func() {
		defer close(tokensChan)
		if h.Tokenizer != nil {
			if tokens, err := h.Tokenizer.CountInput(&req, h.Config.Model); err == nil {
				tokensChan <- tokens
			}
		}
	}()

	upstreamReq := &types.ResponsesRequest{
		Model: h.Config.Model,
		Input: input,
	}

	resp, err := h.Provider.CreateResponse(r.Context(), upstreamReq)

	var promptTokens int
	select {
	case tokens, ok := <-tokensChan:
		if ok {
			promptTokens = tokens
		}
	case <-time.After(tokenCountTimeout):
		// Token counting took too long, proceed with upstream numbers
	}

	if err != nil {
		status, apiErr := mapUpstreamError(err)
		types.WriteError(w, status, apiErr)
		go h.logInference(requestID, imageCount, status, apiErr.Error.Message, nil, promptTokens, false, startTime)
		return
	}

	result := &types.InferenceResponse{
		Model:  h.Config.Model,
		Output: resp.OutputText(),
	}

	if ttl > 0 {
		h.Cache.SetWithTTL(key, result, 1, ttl)
	}

	shared.WriteJSON(w, result, http.StatusOK)
	go h.logInference(requestID, imageCount, http.StatusOK, "", resp.Usage, promptTokens, false, startTime)
}

// writeInputError maps a BuildInput failure to its HTTP status.
func (h *Handlers) writeInputError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyText):
		types.WriteError(w, http.StatusBadRequest,
			types.NewAPIErrorWithParam(err.Error(), types.ErrorTypeInvalidRequest, "text"))
	case errors.Is(err, ErrInvalidBase64):
		types.WriteError(w, http.StatusBadRequest,
			types.NewAPIErrorWithParam(err.Error(), types.ErrorTypeInvalidRequest, "images"))
	case errors.Is(err, ErrImagesTooLarge):
		types.WriteError(w, http.StatusRequestEntityTooLarge,
			types.ErrPayloadTooLarge(err.Error()))
	default:
		types.WriteError(w, http.StatusBadRequest,
			types.ErrInvalidRequest(err.Error()))
	}
}

// mapUpstreamError converts a provider failure into a response status and
// error envelope. Upstream HTTP errors are relayed with their original
// status; transport failures become 502.
func mapUpstreamError(err error) (int, *types.APIError) {
	var upErr *provider.UpstreamError
	if errors.As(err, &upErr) {
		errType := upErr.Type
		if errType == "" {
			errType = types.ErrorTypeServer
		}
		return upErr.StatusCode, types.NewAPIError(upErr.Message, errType)
	}
	return http.StatusBadGateway, types.ErrServer("upstream request failed: " + err.Error())
}

// logInference records the request and updates the daily aggregates.
// Runs in a goroutine; storage errors are dropped.
func (h *Handlers) logInference(requestID string, imageCount, statusCode int, errMsg string, usage *types.Usage, countedPromptTokens int, cacheHit bool, startTime time.Time) {
	if h.Storage == nil {
		return
	}

	prompt := countedPromptTokens
	completion := 0
	total := 0
	if usage != nil {
		if usage.InputTokens > 0 {
			prompt = usage.InputTokens
		}
		completion = usage.OutputTokens
		total = usage.TotalTokens
	}
	if total == 0 {
		total = prompt + completion
	}

	errorCount := 0
	if statusCode >= 400 {
		errorCount = 1
	}
	cacheHits := 0
	if cacheHit {
		cacheHits = 1
	}

	_ = h.Storage.LogRequest(&storage.RequestLog{
		ID:               uuid.NewString(),
		RequestID:        requestID,
		Model:            h.Config.Model,
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      total,
		ImageCount:       imageCount,
		CacheHit:         cacheHit,
		StatusCode:       statusCode,
		ErrorMessage:     errMsg,
		DurationMs:       time.Since(startTime).Milliseconds(),
		CreatedAt:        time.Now(),
	})

	_ = h.Storage.UpdateDailyUsage(&storage.DailyUsage{
		Date:             time.Now().Format("2006-01-02"),
		Model:            h.Config.Model,
		RequestCount:     1,
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      total,
		CacheHits:        cacheHits,
		ErrorCount:       errorCount,
	})
}
