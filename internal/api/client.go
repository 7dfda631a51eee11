// Package api implements the configured transport all resource services
// share: endpoint registry, envelope decoding, query encoding, and the
// error taxonomy of the LIMS backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/THANGADHIWAN/focal/internal/errors"
	"github.com/THANGADHIWAN/focal/internal/httpclient"
	"github.com/THANGADHIWAN/focal/internal/observability/metrics"
)

// Client is the single configured transport used by all services. It is
// stateless apart from the connection pool; there is no retry and no
// backoff: a failed call fails the caller exactly once.
type Client struct {
	baseURL   string
	http      *httpclient.Client
	endpoints Endpoints
	logger    *slog.Logger
	metrics   *metrics.APIMetrics
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the backend root, e.g. http://localhost:8000/api/v1
	BaseURL string

	// Timeout is the fixed per-request timeout (default 10s)
	Timeout time.Duration

	// HTTPClient substitutes the underlying transport, used by tests to
	// install an intercepting round tripper. Leave nil in production.
	HTTPClient *http.Client

	// Logger receives request/response diagnostics. Defaults to the
	// process default logger with a service attribute.
	Logger *slog.Logger

	// Metrics, when set, observes every call through transport hooks.
	Metrics *metrics.APIMetrics
}

// New creates a configured API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.Newf("api base URL is required").
			Component("api").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = httpclient.DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().With("service", "api")
	}

	hc := httpclient.New(&httpclient.Config{
		DefaultTimeout: cfg.Timeout,
		Underlying:     cfg.HTTPClient,
	})

	if cfg.Metrics != nil {
		m := cfg.Metrics
		hc.SetAfterResponseHook(func(req *http.Request, resp *http.Response, elapsed time.Duration, err error) {
			code := "error"
			if resp != nil {
				code = strconv.Itoa(resp.StatusCode)
			}
			m.ObserveRequest(req.Method, code, elapsed)
		})
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		logger:  logger,
		metrics: cfg.Metrics,
	}, nil
}

// Endpoints returns the endpoint registry.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.Close()
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Get issues a GET and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body and decodes the envelope data into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Patch issues a PATCH with a JSON body and decodes the envelope data into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Put issues a PUT with a JSON body and decodes the envelope data into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE. Success is no error; there is no payload.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// GetRaw issues a GET and returns the raw response bytes without envelope
// decoding, used for the CSV export endpoint.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.buildURL(path, query)

	c.logger.Debug("api request", "method", http.MethodGet, "url", fullURL, "raw", true)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, http.NoBody)
	if err != nil {
		return nil, c.transportError(err, http.MethodGet, fullURL)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, c.transportError(err, http.MethodGet, fullURL)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(err, http.MethodGet, fullURL)
	}

	c.logger.Debug("api response", "method", http.MethodGet, "url", fullURL,
		"status_code", resp.StatusCode, "response_size", len(payload))

	if resp.StatusCode >= 400 {
		return nil, c.httpError(resp.StatusCode, http.MethodGet, fullURL, payload)
	}
	return payload, nil
}

// do performs one request/response round trip. Every request is logged
// before dispatch and every response or error after completion; logging
// has no behavioral effect on the caller.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	fullURL := c.buildURL(path, query)

	var bodyReader io.Reader = http.NoBody
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return errors.New(err).
				Component("api").
				Category(errors.CategoryValidation).
				Context("method", method).
				Context("url", fullURL).
				Build()
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	c.logger.Debug("api request",
		"method", method,
		"url", fullURL,
		"query", query.Encode(),
		"body", string(bodyBytes))

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return c.transportError(err, method, fullURL)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		c.logger.Error("api request failed", "method", method, "url", fullURL, "error", err)
		return c.transportError(err, method, fullURL)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("api response read failed", "method", method, "url", fullURL, "error", err)
		return c.transportError(err, method, fullURL)
	}

	c.logger.Debug("api response",
		"method", method,
		"url", fullURL,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_size", len(payload))

	if resp.StatusCode >= 400 {
		return c.httpError(resp.StatusCode, method, fullURL, payload)
	}

	if out == nil {
		return nil
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return errors.New(err).
			Component("api").
			Category(errors.CategoryAPIResponse).
			Context("method", method).
			Context("url", fullURL).
			Context("response_size", len(payload)).
			Build()
	}

	// Absent data decodes to the caller's zero value, not an error.
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.New(err).
			Component("api").
			Category(errors.CategoryAPIResponse).
			Context("method", method).
			Context("url", fullURL).
			Build()
	}
	return nil
}

// transportError wraps a transport-level failure (DNS, refused, timeout)
// so it is distinguishable from an HTTP error response.
func (c *Client) transportError(err error, method, fullURL string) error {
	category := errors.CategoryNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		category = errors.CategoryTimeout
	} else if errors.Is(err, context.Canceled) {
		category = errors.CategoryCancellation
	}
	c.observeError(category)
	return errors.New(err).
		Component("api").
		Category(category).
		Context("method", method).
		Context("url", fullURL).
		Build()
}

// httpError builds the APIError for a non-2xx response, carrying the
// parsed error body so callers can branch on status.
func (c *Client) httpError(status int, method, fullURL string, payload []byte) error {
	message := ""

	var env Envelope
	if err := json.Unmarshal(payload, &env); err == nil {
		if env.Message != "" {
			message = env.Message
		}
		if message == "" && len(env.Error) > 0 {
			var eb errorBody
			if err := json.Unmarshal(env.Error, &eb); err == nil {
				if eb.Detail != "" {
					message = eb.Detail
				} else if eb.Message != "" {
					message = eb.Message
				}
			} else {
				// Error field may be a bare string.
				var s string
				if json.Unmarshal(env.Error, &s) == nil {
					message = s
				}
			}
		}
	}
	if message == "" {
		var eb errorBody
		if err := json.Unmarshal(payload, &eb); err == nil && eb.Detail != "" {
			message = eb.Detail
		}
	}

	c.logger.Warn("api error response",
		"method", method,
		"url", fullURL,
		"status_code", status,
		"message", message)

	c.observeError(categoryForStatus(status))

	return &APIError{
		Status:  status,
		Method:  method,
		URL:     fullURL,
		Message: message,
		Body:    payload,
	}
}

// observeError feeds the per-category error counter when metrics are
// attached.
func (c *Client) observeError(category errors.ErrorCategory) {
	if c.metrics != nil {
		c.metrics.ObserveError(string(category))
	}
}

func categoryForStatus(status int) errors.ErrorCategory {
	switch {
	case status == http.StatusNotFound:
		return errors.CategoryNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return errors.CategoryValidation
	default:
		return errors.CategoryAPIResponse
	}
}

// TestConnection distinguishes "server unreachable" from "server returned
// an error": transport-class failures mean not connected, while any HTTP
// response, even 4xx, means connected.
func (c *Client) TestConnection(ctx context.Context) bool {
	var health struct {
		Status string `json:"status"`
	}
	err := c.Get(ctx, c.endpoints.Metadata("health"), nil, &health)
	if err == nil {
		return true
	}
	if IsConnectivity(err) {
		return false
	}
	return true
}
