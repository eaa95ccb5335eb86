// Package upstream is the typed client for the library backend's REST API.
// Every portal action that touches persistent state goes through it: one
// transport wrapper plus a thin service object per backend domain. The
// client performs no retries and no caching; failures surface once, as
// typed errors, and are abandoned.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/perpuskita/library-portal/internal/api/metrics"
	"github.com/perpuskita/library-portal/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

type sessionKey struct{}

// WithSession returns a context carrying the caller's backend session
// cookie. The client attaches it to every request made with that context.
func WithSession(ctx context.Context, cookie *http.Cookie) context.Context {
	if cookie == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, cookie)
}

func sessionFrom(ctx context.Context) *http.Cookie {
	c, _ := ctx.Value(sessionKey{}).(*http.Cookie)
	return c
}

// Pagination mirrors the backend's pagination block.
type Pagination struct {
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page,omitempty"`
	Limit      int `json:"limit,omitempty"`
}

// envelope is the backend's uniform response shape. The backend is not
// consistent about where the payload lives (data for most endpoints, user
// for profile endpoints, token for payments); decoding normalises that here
// so service methods never have to care.
type envelope struct {
	Success        bool                   `json:"success"`
	Message        string                 `json:"message"`
	Errors         json.RawMessage        `json:"errors"`
	Data           json.RawMessage        `json:"data"`
	User           json.RawMessage        `json:"user"`
	Token          string                 `json:"token"`
	RedirectURL    string                 `json:"redirectUrl"`
	Pagination     *Pagination            `json:"pagination"`
	PaymentDetails *domain.PaymentDetails `json:"paymentDetails"`
}

// meta carries the non-payload parts of a response that some callers need:
// pagination for lists, Set-Cookie headers for login, the Snap token for
// payment endpoints.
type meta struct {
	Pagination  *Pagination
	Cookies     []*http.Cookie
	Token       string
	RedirectURL string
	Message     string
}

// Config captures the settings needed to reach the library backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the transport shared by all service objects.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client for the given backend. A default timeout is
// applied when none is configured.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BaseURL returns the configured backend base URL. Used for browser
// redirects (Google OAuth) that bypass the client entirely.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (*meta, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) (*meta, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) (*meta, error) {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) (*meta, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do issues one request against the backend: URL from the configured base,
// JSON in, JSON envelope out, session cookie attached when present on ctx.
// Non-2xx responses become a *Error carrying the backend's message and
// errors fields; transport failures wrap domain.ErrUpstreamUnavailable.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*meta, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var buf *bytes.Buffer
	if body != nil {
		buf = &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	var req *http.Request
	var err error
	if buf != nil {
		req, err = http.NewRequestWithContext(ctx, method, u, buf)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie := sessionFrom(ctx); cookie != nil {
		req.AddCookie(cookie)
	}
	if key := idempotencyFrom(ctx); key != "" {
		req.Header.Set("Idempotency-Key", key)
	}

	route := metricRoute(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, route, "network_error").Inc()
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("upstream request failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(method, route, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && resp.StatusCode < 400 {
		return nil, fmt.Errorf("decode response from %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{
			Status:         resp.StatusCode,
			Message:        env.Message,
			Errors:         env.Errors,
			PaymentDetails: env.PaymentDetails,
		}
		c.log.Debug().Int("status", resp.StatusCode).Str("method", method).
			Str("path", path).Str("message", apiErr.Message).Msg("upstream error response")
		return nil, apiErr
	}

	if out != nil {
		payload := env.Data
		if len(payload) == 0 || string(payload) == "null" {
			payload = env.User
		}
		if len(payload) > 0 && string(payload) != "null" {
			if err := json.Unmarshal(payload, out); err != nil {
				return nil, fmt.Errorf("decode payload from %s %s: %w", method, path, err)
			}
		}
	}

	return &meta{
		Pagination:  env.Pagination,
		Cookies:     resp.Cookies(),
		Token:       env.Token,
		RedirectURL: env.RedirectURL,
		Message:     env.Message,
	}, nil
}

// metricRoute collapses a request path to its first two segments
// ("/api/books/123" -> "/api/books") to keep metric cardinality bounded.
func metricRoute(path string) string {
	segments := 0
	for i := 1; i < len(path); i++ {
		if path[i] == '/' {
			segments++
			if segments == 2 {
				return path[:i]
			}
		}
	}
	return path
}

type idemKey struct{}

// WithIdempotencyKey attaches an Idempotency-Key header to requests made
// with the returned context. Used on payment-creating POSTs so an impatient
// double submit cannot charge twice.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, idemKey{}, key)
}

func idempotencyFrom(ctx context.Context) string {
	k, _ := ctx.Value(idemKey{}).(string)
	return k
}
