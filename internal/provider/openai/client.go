// Package openai implements the OpenAI Responses API provider.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/provider"
	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/types"
)

// Client calls the OpenAI Responses API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates an OpenAI client. baseURL is the API root without a trailing
// slash (e.g. https://api.openai.com/v1).
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return "openai"
}

// CreateResponse executes one inference call against the Responses endpoint.
func (c *Client) CreateResponse(ctx context.Context, req *types.ResponsesRequest) (*types.ResponsesResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, upstreamError(resp.StatusCode, body)
	}

	var result types.ResponsesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode upstream response: %w", err)
	}

	// A "completed" response can still carry an error object on some
	// failure modes; surface it the same way as an HTTP error.
	if result.Error != nil && result.Error.Message != "" {
		return nil, &provider.UpstreamError{
			StatusCode: http.StatusBadGateway,
			Type:       result.Error.Type,
			Message:    result.Error.Message,
		}
	}

	return &result, nil
}

// upstreamError extracts the OpenAI error envelope from an error body,
// falling back to the raw body when it isn't JSON.
func upstreamError(statusCode int, body []byte) *provider.UpstreamError {
	var apiErr types.APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &provider.UpstreamError{
			StatusCode: statusCode,
			Type:       apiErr.Error.Type,
			Message:    apiErr.Error.Message,
		}
	}

	message := strings.TrimSpace(string(body))
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &provider.UpstreamError{
		StatusCode: statusCode,
		Type:       types.ErrorTypeServer,
		Message:    message,
	}
}
