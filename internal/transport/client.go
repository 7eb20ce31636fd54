// Package transport sends authenticated JSON requests to the Shippo API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danmuck/shippoctl/internal/auth"
	"github.com/danmuck/shippoctl/internal/observability"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL   = "https://api.goshippo.com/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "shippoctl/0.1"

	// maxErrorBody bounds how much of a non-JSON error body is kept.
	maxErrorBody = 512
)

var (
	ErrBaseURLRequired    = errors.New("transport: base url required")
	ErrTokenRequired      = errors.New("transport: api token required")
	ErrUnexpectedResponse = errors.New("transport: unexpected response")
	ErrAPI                = errors.New("transport: api error")
)

// Doer executes one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	UserAgent string
}

func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// Client is safe for concurrent use; it holds no per-call state.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      Doer
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, ErrBaseURLRequired
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("transport: parse base url: %w", err)
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, ErrTokenRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	c := &Client{
		baseURL:   base,
		token:     token,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends payload as a JSON body (nil sends none) and decodes the JSON
// object in the response. Numbers are decoded as json.Number. A status of
// 400 or above yields an *APIError.
func (c *Client) Do(ctx context.Context, method, path string, payload map[string]any, query url.Values) (map[string]any, error) {
	start := time.Now()
	resource := resourceLabel(path)
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("transport: encode %s payload: %w", resource, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}
	req.Header.Set("Authorization", auth.FormatAuthorization(c.token))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		observability.RecordAPIRequest(resource, method, 0, time.Since(start))
		log.Error().
			Str("method", method).
			Str("path", path).
			Err(err).
			Msg("api_request_failed")
		return nil, fmt.Errorf("transport: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	observability.RecordAPIRequest(resource, method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("transport: read %s %s response: %w", method, path, err)
	}

	event := log.Debug()
	if resp.StatusCode >= 400 {
		event = log.Warn()
	}
	event.
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api_request")

	if resp.StatusCode >= 400 {
		return nil, newAPIError(resp.StatusCode, method, path, raw)
	}
	out, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return out, nil
}

func decodeObject(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: null body", ErrUnexpectedResponse)
	}
	return out, nil
}

// resourceLabel is the first path segment, used as a low-cardinality
// metrics label.
func resourceLabel(path string) string {
	first, _, _ := strings.Cut(strings.Trim(path, "/"), "/")
	if first == "" {
		return "root"
	}
	return first
}
