// Package provider defines the upstream inference provider contract.
package provider

import (
	"context"
	"fmt"

	"github.com/artemioadaysolvers/Prueba-Tecnica-Plomolex/internal/types"
)

// Provider is an upstream model API capable of serving inference requests.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// CreateResponse executes one inference call against the upstream API.
	// Upstream HTTP errors are returned as *UpstreamError; any other error
	// is a transport failure.
	CreateResponse(ctx context.Context, req *types.ResponsesRequest) (*types.ResponsesResponse, error)
}

// UpstreamError carries a non-2xx answer from the upstream API so handlers
// can relay the original status code.
type UpstreamError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Message)
}
