// Package rspace is a minimal REST client for the RSpace ELN and Inventory
// APIs, covering the endpoints the tool layer delegates to. It performs no
// retries and holds no state beyond the HTTP client: request validation that
// the platform owns (occupancy, permissions) stays on the platform.
package rspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	elnBase       = "/api/v1"
	inventoryBase = "/api/inventory/v1"

	defaultTimeout = 30 * time.Second
)

// Config carries the connection settings for one RSpace deployment.
type Config struct {
	// BaseURL is the deployment root, e.g. https://research.example.com.
	BaseURL string
	// APIKey is sent on every request in the apiKey header.
	APIKey string
	// Timeout bounds each HTTP request. Zero means 30s.
	Timeout time.Duration
	// Logger receives per-request debug logs. Zero value disables logging.
	Logger zerolog.Logger
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client bundles the two API surfaces of one deployment.
type Client struct {
	ELN       *ELNClient
	Inventory *InventoryClient
}

// ELNClient calls the document, notebook, form, and audit endpoints.
type ELNClient struct {
	core *core
}

// InventoryClient calls the sample, container, and template endpoints.
type InventoryClient struct {
	core *core
}

// NewClient builds a client for the deployment described by cfg.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("rspace: base URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("rspace: API key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &core{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		http:    httpClient,
		log:     cfg.Logger,
	}
	return &Client{
		ELN:       &ELNClient{core: c},
		Inventory: &InventoryClient{core: c},
	}, nil
}

// core is the shared request plumbing behind both API surfaces.
type core struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

// get issues a GET and decodes the JSON response into out.
func (c *core) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST with a JSON body and decodes the response into out.
func (c *core) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// put issues a PUT with a JSON body and decodes the response into out.
func (c *core) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// delete issues a DELETE. Responses with no body are accepted.
func (c *core) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do runs one request. Non-2xx responses become *APIError; 409 and 404
// unwrap to ErrConflict and ErrNotFound respectively.
func (c *core) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	data, _, requestID, err := c.raw(ctx, method, path, query, body, "application/json")
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("rspace: decoding %s %s response (request %s): %w", method, path, requestID, err)
	}
	return nil
}

// raw runs one request and returns the undecoded response body. Used
// directly for binary endpoints (file download, barcodes).
func (c *core) raw(ctx context.Context, method, path string, query url.Values, body any, accept string) ([]byte, int, string, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, "", fmt.Errorf("rspace: encoding %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, 0, "", err
	}
	requestID := uuid.NewString()
	req.Header.Set("apiKey", c.apiKey)
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, requestID, fmt.Errorf("rspace: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, requestID, fmt.Errorf("rspace: reading %s %s response: %w", method, path, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("took", time.Since(start)).
		Msg("RSpace API call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, requestID, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			RequestID:  requestID,
		}
	}
	return data, resp.StatusCode, requestID, nil
}

// errorMessage pulls the human-readable message out of a platform error
// body, falling back to the raw body.
func errorMessage(data []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Errors  []string
	}
	if err := json.Unmarshal(data, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if len(parsed.Errors) > 0 {
			return strings.Join(parsed.Errors, "; ")
		}
	}
	return strings.TrimSpace(string(data))
}
