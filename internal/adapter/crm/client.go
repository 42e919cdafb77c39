// Package crm is the REST client for the CRM API. Every method issues one
// request; responses are unwrapped with the envelope package and failures
// are returned as *domain.Error.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/envelope"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	baseRetryDelay    = 500 * time.Millisecond
	userAgent         = "Kindred/1.0"
)

var _ domain.CRMClient = (*Client)(nil)

// Client implements domain.CRMClient over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithMaxRetries sets how many times a failed GET is retried
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithRetryDelay sets the first backoff delay; it doubles per attempt
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a CRM API client for baseURL authenticated with apiKey
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:    NormalizeURL(baseURL),
		apiKey:     apiKey,
		maxRetries: defaultMaxRetries,
		retryDelay: baseRetryDelay,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeURL trims whitespace, trailing slashes and a trailing /api, and
// adds https:// when no scheme is given.
func NormalizeURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	u = strings.TrimSuffix(u, "/api")
	if u != "" && !strings.Contains(u, "://") {
		u = "https://" + u
	}
	return u
}

// BaseURL returns the normalized server URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an authenticated request and returns the body of a 2xx
// response. GET requests are retried with exponential backoff on transport
// errors and 5xx responses; writes are never retried.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	retries := 0
	if method == http.MethodGet {
		retries = c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1))
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "path", path)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		requestID := uuid.NewString()
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("X-Request-ID", requestID)
		req.Header.Set("User-Agent", userAgent)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		c.logger.Debug("crm request", "method", method, "path", path, "request_id", requestID, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("crm request failed", "error", err, "path", path, "attempt", attempt)
			lastErr = &domain.Error{Kind: domain.KindNetwork, Err: fmt.Errorf("%s %s: %w", method, path, err)}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = &domain.Error{Kind: domain.KindNetwork, Err: fmt.Errorf("failed to read response: %w", err)}
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = statusError(resp.StatusCode, respBody)
			c.logger.Warn("crm server error",
				"status", resp.StatusCode,
				"path", path,
				"request_id", requestID,
				"attempt", attempt,
				"maxRetries", retries,
			)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.logger.Debug("crm request rejected", "status", resp.StatusCode, "path", path, "request_id", requestID)
			return nil, statusError(resp.StatusCode, respBody)
		}

		return respBody, nil
	}

	c.logger.Error("crm request failed after retries", "error", lastErr, "method", method, "path", path)
	return nil, lastErr
}

// statusError maps a non-2xx response to a typed error
func statusError(status int, body []byte) *domain.Error {
	apiErr, _ := envelope.ParseError(body)

	kind := domain.KindUnknown
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		kind = domain.KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = domain.KindUnauthorized
	case http.StatusNotFound:
		kind = domain.KindNotFound
	}

	return &domain.Error{
		Kind:    kind,
		Status:  status,
		Message: apiErr.Message,
		Fields:  apiErr.Fields,
		Err:     fmt.Errorf("unexpected status code: %d", status),
	}
}

// getList fetches a list endpoint. key names the array inside the envelope
// when the API nests it (e.g. "contacts").
func getList[T any](ctx context.Context, c *Client, path string, query url.Values, key string) ([]T, domain.Pagination, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	items, page, err := envelope.DecodeList[T](body, key)
	if err != nil {
		c.logger.Error("failed to parse list response", "error", err, "path", path, "bodyLen", len(body))
		return nil, domain.Pagination{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return items, page, nil
}

// getAll is getList for endpoints without pagination
func getAll[T any](ctx context.Context, c *Client, path, key string) ([]T, error) {
	items, _, err := getList[T](ctx, c, path, nil, key)
	return items, err
}

// decodeAll decodes a list from a write response
func decodeAll[T any](c *Client, body []byte, key string) ([]T, error) {
	items, _, err := envelope.DecodeList[T](body, key)
	if err != nil {
		c.logger.Error("failed to parse list response", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return items, nil
}

// call sends body (nil for none) and decodes a single record response
func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T
	respBody, err := c.doRequest(ctx, method, path, nil, body)
	if err != nil {
		return zero, err
	}
	item, err := envelope.DecodeOne[T](respBody)
	if err != nil {
		c.logger.Error("failed to parse response", "error", err, "path", path, "bodyLen", len(respBody))
		return zero, fmt.Errorf("failed to parse response: %w", err)
	}
	return item, nil
}

// send performs a request whose response body is ignored
func (c *Client) send(ctx context.Context, method, path string, body any) error {
	_, err := c.doRequest(ctx, method, path, nil, body)
	return err
}

// escape builds a path from segments, escaping each ID
func escape(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}

// requireID rejects blank IDs before a request is made
func requireID(what, id string) error {
	if strings.TrimSpace(id) == "" {
		return &domain.Error{Kind: domain.KindValidation, Message: what + " id is required", Err: errors.New("missing id")}
	}
	return nil
}
