// Package backend is the HTTP client for the sales backend REST API.
// Every response is wrapped in a {success, message, data} envelope; the
// client normalizes the envelope and surfaces failures as typed errors.
package backend

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

	apperrors "github.com/salesops/so-ui-api/internal/errors"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
// Callers treat it as a signal to invalidate the local session.
var ErrUnauthorized = errors.New("backend rejected credentials")

// envelope is the wire shape of every backend response.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type bearerKey struct{}

// WithBearer returns a context carrying the bearer token to attach to
// backend requests made with it.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFromContext extracts the bearer token, if any.
func BearerFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerKey{}).(string)
	return token, ok && token != ""
}

// ClientOptions groups dependencies for Client.
type ClientOptions struct {
	BaseURL    string
	Timeout    time.Duration // default 15s when zero
	HTTPClient *http.Client  // optional, overrides Timeout
	Logger     *slog.Logger  // optional
}

// Client talks to the sales backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a backend API client.
func NewClient(opts ClientOptions) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend base URL is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// do executes one backend request. A non-nil out receives the unwrapped
// envelope data. Query may be nil; body may be nil for GET/DELETE.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := BearerFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "%s %s", method, path)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("close response body", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "read response %s %s", method, path)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	var env envelope
	if unmarshalErr := json.Unmarshal(raw, &env); unmarshalErr != nil {
		return apperrors.Upstreamf("malformed response from %s %s: status %d", method, path, resp.StatusCode)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return c.statusError(resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if unmarshalErr := json.Unmarshal(env.Data, out); unmarshalErr != nil {
			return fmt.Errorf("unmarshal response data: %w", unmarshalErr)
		}
	}
	return nil
}

// statusError maps a backend failure to the application error taxonomy.
func (c *Client) statusError(status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.Validation(message)
	case http.StatusForbidden:
		return apperrors.Forbidden(message)
	case http.StatusNotFound:
		return apperrors.NotFound(message)
	case http.StatusConflict:
		return apperrors.Conflict(message)
	default:
		return apperrors.Upstream(message)
	}
}

// GetRaw fetches a backend path and returns the full decoded body, envelope
// included, for expression-based extraction.
func (c *Client) GetRaw(ctx context.Context, path string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token, ok := BearerFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "GET %s", path)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("close response body", "error", cerr)
		}
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return nil, apperrors.Upstreamf("GET %s: status %d", path, resp.StatusCode)
	}

	var body any
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&body); decodeErr != nil {
		return nil, apperrors.Wrapf(decodeErr, apperrors.ErrCodeUpstream, "decode GET %s", path)
	}
	return body, nil
}
