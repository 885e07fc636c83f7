// Package transport is the outbound HTTP leg of the pipeline: one POST per
// serialized event, response body discarded.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client posts serialized events to the configured backend. This is a
// low-frequency diagnostic channel, so there is no pooling, no retry and no
// interpretation of the response beyond success or failure.
type Client struct {
	backend    string
	httpClient *http.Client
}

// New validates the backend URL and builds a client. A timeout of 0 leaves
// the POST without a client-side deadline.
func New(backend string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(backend)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend %q must use an http scheme", backend)
	}
	return &Client{
		backend: backend,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Backend returns the destination URL.
func (c *Client) Backend() string {
	return c.backend
}

// Post sends one serialized event. The response body is read and discarded;
// a completed transfer with status >= 400 still counts as a failed delivery.
func (c *Client) Post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.backend, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("backend response status %d", resp.StatusCode)
	}
	return nil
}
