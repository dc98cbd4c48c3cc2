package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gaibarra/33fitstudio/internal/metrics"
)

// DefaultTimeout bounds every backend call. There is no retry and no
// cross-call cancellation beyond this per-request deadline.
const DefaultTimeout = 10 * time.Second

// Client talks to the studio backend REST API. Every request carries the
// tenant header and, when a token is supplied, a bearer Authorization header.
type Client struct {
	baseURL  string
	studioID string
	timeout  time.Duration
	http     *http.Client
}

func New(baseURL, studioID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:  baseURL,
		studioID: studioID,
		timeout:  timeout,
		http:     &http.Client{},
	}
}

func (c *Client) BaseURL() string  { return c.baseURL }
func (c *Client) StudioID() string { return c.studioID }

// APIError is a non-2xx backend response. Body holds the raw response text so
// callers can surface or flatten the server's own message.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Do issues a JSON request against the backend. A non-2xx response yields an
// *APIError carrying the numeric status; a 2xx response is decoded into out
// when out is non-nil and the body is non-empty.
func (c *Client) Do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	if c.studioID != "" {
		req.Header.Set("X-Studio-Id", c.studioID)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(method, "error", time.Since(start).Seconds())
		return err
	}
	defer res.Body.Close()
	metrics.RecordUpstreamRequest(method, strconv.Itoa(res.StatusCode), time.Since(start).Seconds())

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &APIError{Status: res.StatusCode, Body: string(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path, token string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) Post(ctx context.Context, path, token string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, token, body, out)
}

func (c *Client) Patch(ctx context.Context, path, token string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, token, body, out)
}

func (c *Client) Delete(ctx context.Context, path, token string) error {
	return c.Do(ctx, http.MethodDelete, path, token, nil, nil)
}
