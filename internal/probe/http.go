package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// response is a fully read HTTP response.
type response struct {
	status int
	header http.Header
	body   []byte
}

// Get performs a GET request and reads the whole body.
func (c *HTTPClient) Get(ctx context.Context, url string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

// checkURL builds the request URL for check.
func checkURL(cfg *Config, check Check) string {
	url := baseURL(cfg) + cfg.Path
	if check.Query != "" {
		url += "?" + check.Query
	}
	return url
}

// healthURL builds the service health endpoint URL.
func healthURL(cfg *Config) string {
	return baseURL(cfg) + healthPath
}

func baseURL(cfg *Config) string {
	return strings.TrimRight(cfg.BaseURL, "/")
}
