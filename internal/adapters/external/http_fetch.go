// Package external provides adapters for external services.
// These adapters implement ports for the upstream weather providers and the response cache.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"weatherproxy.app/internal/ports"
	"weatherproxy.app/pkg/errors"
)

// DefaultHTTPTimeout bounds a single upstream request when no timeout is configured
const DefaultHTTPTimeout = 5 * time.Second

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns the client shared by provider adapters. The timeout
// covers the whole exchange including reading the body.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// jsonFetcher performs one GET and returns the validated body untouched.
// There is no retry.
type jsonFetcher struct {
	provider string
	client   HTTPClient
	logger   ports.Logger
}

func newJSONFetcher(provider string, client HTTPClient, logger ports.Logger) jsonFetcher {
	if client == nil {
		client = NewHTTPClient(DefaultHTTPTimeout)
	}
	return jsonFetcher{provider: provider, client: client, logger: logger}
}

func (f jsonFetcher) get(ctx context.Context, requestURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewUpstreamError(fmt.Sprintf("failed to build %s request", f.provider), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewUpstreamError(fmt.Sprintf("failed to call %s", f.provider), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && f.logger != nil {
			f.logger.Warn("Failed to close upstream response body",
				ports.F("provider", f.provider),
				ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewUpstreamError(fmt.Sprintf("%s returned status %d", f.provider, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewUpstreamError(fmt.Sprintf("failed to read %s response", f.provider), err)
	}
	// the whole body must be one JSON value; trailing bytes are rejected
	if !json.Valid(body) {
		return nil, errors.NewUpstreamError(fmt.Sprintf("failed to decode %s response", f.provider), nil)
	}

	return json.RawMessage(bytes.TrimSpace(body)), nil
}
