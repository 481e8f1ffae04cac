package infer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/config"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/provider"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/storage"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/types"
)

type stubProvider struct {
	resp *types.ResponsesResponse
	err  error

	lastReq *types.ResponsesRequest
	calls   int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) CreateResponse(_ context.Context, req *types.ResponsesRequest) (*types.ResponsesResponse, error) {
	s.calls++
	s.lastReq = req
	return s.resp, s.err
}

type stubTokenizer struct {
	tokens int
}

func (s *stubTokenizer) CountTokens(_ string, _ string) (int, error) { return s.tokens, nil }

func (s *stubTokenizer) CountInput(_ *types.InferenceRequest, _ string) (int, error) {
	return s.tokens, nil
}

// recordStorage captures request log rows on a channel so tests can wait
// for the async logging goroutine.
type recordStorage struct {
	logs chan *storage.RequestLog
}

func newRecordStorage() *recordStorage {
	return &recordStorage{logs: make(chan *storage.RequestLog, 8)}
}

func (s *recordStorage) LogRequest(log *storage.RequestLog) error {
	s.logs <- log
	return nil
}

func (s *recordStorage) GetRequestLogs(storage.LogFilter) ([]*storage.RequestLog, error) {
	return nil, nil
}
func (s *recordStorage) DeleteRequestLogs(string) (int64, error) { return 0, nil }
func (s *recordStorage) GetUsageStats(storage.StatsFilter) (*storage.UsageStats, error) {
	return &storage.UsageStats{}, nil
}
func (s *recordStorage) GetDailyUsage(string, string) ([]*storage.DailyUsage, error) {
	return nil, nil
}
func (s *recordStorage) UpdateDailyUsage(*storage.DailyUsage) error { return nil }
func (s *recordStorage) GetAdminPasswordHash() (string, error)      { return "", nil }
func (s *recordStorage) SetAdminPasswordHash(string) error          { return nil }
func (s *recordStorage) HasAdminPassword() (bool, error)            { return false, nil }
func (s *recordStorage) Close() error                               { return nil }

func (s *recordStorage) waitForLog(t *testing.T) *storage.RequestLog {
	t.Helper()
	select {
	case log := <-s.logs:
		return log
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for request log")
		return nil
	}
}

func okResponse(text string) *types.ResponsesResponse {
	return &types.ResponsesResponse{
		ID:     "resp_123",
		Object: "response",
		Model:  "gpt-4o-mini",
		Status: "completed",
		Output: []types.OutputItem{
			{
				Type: types.OutputTypeMessage,
				Role: "assistant",
				Content: []types.OutputContentPart{
					{Type: types.OutputTypeText, Text: text},
				},
			},
		},
		Usage: &types.Usage{InputTokens: 5, OutputTokens: 7, TotalTokens: 12},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Model:  "gpt-4o-mini",
		APIKey: "sk-test",
	}
}

func doInfer(t *testing.T, h *Handlers, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/infer", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Infer(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var apiErr types.APIError
	if err := json.NewDecoder(w.Body).Decode(&apiErr); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return apiErr
}

func TestInfer(t *testing.T) {
	prov := &stubProvider{resp: okResponse("The capital of France is Paris.")}
	h := New(testConfig(), prov, nil, nil, nil)

	w := doInfer(t, h, map[string]string{"text": "What is the capital of France?"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.InferenceResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Model != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini, got %q", resp.Model)
	}
	if resp.Output != "The capital of France is Paris." {
		t.Errorf("unexpected output: %q", resp.Output)
	}

	if prov.lastReq.Model != "gpt-4o-mini" {
		t.Errorf("provider called with model %q", prov.lastReq.Model)
	}
	if len(prov.lastReq.Input) != 1 || prov.lastReq.Input[0].Role != types.RoleUser {
		t.Errorf("unexpected upstream input: %+v", prov.lastReq.Input)
	}
}

func TestInferInvalidJSON(t *testing.T) {
	h := New(testConfig(), &stubProvider{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/infer", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.Infer(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if apiErr := decodeError(t, w); apiErr.Error.Type != types.ErrorTypeInvalidRequest {
		t.Errorf("expected invalid_request_error, got %q", apiErr.Error.Type)
	}
}

func TestInferEmptyText(t *testing.T) {
	prov := &stubProvider{resp: okResponse("ignored")}
	h := New(testConfig(), prov, nil, nil, nil)

	w := doInfer(t, h, map[string]string{"text": "   "})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	apiErr := decodeError(t, w)
	if apiErr.Error.Type != types.ErrorTypeInvalidRequest {
		t.Errorf("expected invalid_request_error, got %q", apiErr.Error.Type)
	}
	if apiErr.Error.Param == nil || *apiErr.Error.Param != "text" {
		t.Errorf("expected param text, got %v", apiErr.Error.Param)
	}
	if prov.calls != 0 {
		t.Error("upstream must not be called for invalid input")
	}
}

func TestInferInvalidBase64Image(t *testing.T) {
	h := New(testConfig(), &stubProvider{}, nil, nil, nil)

	w := doInfer(t, h, map[string]any{
		"text":   "describe",
		"images": []map[string]string{{"image_b64": "not!!!base64"}},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	apiErr := decodeError(t, w)
	if apiErr.Error.Param == nil || *apiErr.Error.Param != "images" {
		t.Errorf("expected param images, got %v", apiErr.Error.Param)
	}
}

func TestInferMissingAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	prov := &stubProvider{resp: okResponse("ignored")}
	h := New(cfg, prov, nil, nil, nil)

	w := doInfer(t, h, map[string]string{"text": "hello"})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if apiErr := decodeError(t, w); apiErr.Error.Type != types.ErrorTypeServer {
		t.Errorf("expected server_error, got %q", apiErr.Error.Type)
	}
	if prov.calls != 0 {
		t.Error("upstream must not be called without a key")
	}
}

func TestInferUpstreamErrorRelayed(t *testing.T) {
	prov := &stubProvider{err: &provider.UpstreamError{
		StatusCode: http.StatusTooManyRequests,
		Type:       types.ErrorTypeRateLimit,
		Message:    "Rate limit reached",
	}}
	h := New(testConfig(), prov, nil, nil, nil)

	w := doInfer(t, h, map[string]string{"text": "hello"})

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	apiErr := decodeError(t, w)
	if apiErr.Error.Type != types.ErrorTypeRateLimit {
		t.Errorf("expected rate_limit_error, got %q", apiErr.Error.Type)
	}
	if apiErr.Error.Message != "Rate limit reached" {
		t.Errorf("expected upstream message relayed, got %q", apiErr.Error.Message)
	}
}

func TestInferTransportError(t *testing.T) {
	prov := &stubProvider{err: errors.New("connection refused")}
	h := New(testConfig(), prov, nil, nil, nil)

	w := doInfer(t, h, map[string]string{"text": "hello"})

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if apiErr := decodeError(t, w); apiErr.Error.Type != types.ErrorTypeServer {
		t.Errorf("expected server_error, got %q", apiErr.Error.Type)
	}
}

func TestInferCache(t *testing.T) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *types.InferenceResponse]{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
	})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	defer cache.Close()

	cfg := testConfig()
	cfg.CacheTTLSeconds = 60
	prov := &stubProvider{resp: okResponse("cached answer")}
	h := New(cfg, prov, nil, nil, cache)

	body := map[string]string{"text": "What is 2+2?"}

	w := doInfer(t, h, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("expected X-Cache MISS, got %q", got)
	}

	// ristretto admits writes asynchronously
	cache.Wait()
	time.Sleep(10 * time.Millisecond)

	w = doInfer(t, h, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on cached request, got %d", w.Code)
	}
	if got := w.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("expected X-Cache HIT, got %q", got)
	}
	if prov.calls != 1 {
		t.Errorf("expected a single upstream call, got %d", prov.calls)
	}

	var resp types.InferenceResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode cached response: %v", err)
	}
	if resp.Output != "cached answer" {
		t.Errorf("unexpected cached output: %q", resp.Output)
	}
}

func TestInferCacheHitLogsTokens(t *testing.T) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *types.InferenceResponse]{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
	})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	defer cache.Close()

	cfg := testConfig()
	cfg.CacheTTLSeconds = 60
	store := newRecordStorage()
	tok := &stubTokenizer{tokens: 42}
	h := New(cfg, &stubProvider{resp: okResponse("answer")}, store, tok, cache)

	body := map[string]string{"text": "What is 2+2?"}

	if w := doInfer(t, h, body); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	missLog := store.waitForLog(t)
	if missLog.CacheHit {
		t.Fatal("first request must not be a cache hit")
	}

	cache.Wait()
	time.Sleep(10 * time.Millisecond)

	w := doInfer(t, h, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on cached request, got %d", w.Code)
	}
	if got := w.Header().Get("X-Cache"); got != "HIT" {
		t.Fatalf("expected X-Cache HIT, got %q", got)
	}

	hitLog := store.waitForLog(t)
	if !hitLog.CacheHit {
		t.Fatal("expected cache_hit on second request")
	}
	if hitLog.PromptTokens != 42 {
		t.Errorf("expected counted prompt tokens 42, got %d", hitLog.PromptTokens)
	}
	if hitLog.TotalTokens != 42 {
		t.Errorf("expected total tokens 42, got %d", hitLog.TotalTokens)
	}
}
