package mealdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/schrockblock/recipes/internal/neterr"
)

// Performer fetches the raw body of an endpoint.
type Performer interface {
	Perform(ctx context.Context, ep Endpoint) ([]byte, error)
}

// Ensure Client implements Performer at compile time.
var _ Performer = (*Client)(nil)

// Client talks to TheMealDB HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
	logger    *slog.Logger
}

const (
	DefaultBaseURL   = "https://www.themealdb.com/api/json/v1/1/"
	defaultUserAgent = "recipes/0.1"
	requestTimeout   = 10 * time.Second
	maxRedirects     = 10
	maxBodyBytes     = 8 << 20
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit paces requests to perSecond with a burst of one. Zero or
// negative disables pacing.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// NewClient builds a Client for baseURL. An empty baseURL selects the public
// API.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:       requestTimeout,
			CheckRedirect: limitRedirects,
		},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Perform issues a GET for ep and returns the body. Every error is a
// *neterr.TransportError.
func (c *Client) Perform(ctx context.Context, ep Endpoint) ([]byte, error) {
	if c == nil {
		return nil, &neterr.TransportError{Code: neterr.CodeUnknown, Op: ep.Path, Err: errors.New("client is nil")}
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, neterr.Wrap(ep.Path, fmt.Errorf("wait for rate limiter: %w", err))
		}
	}

	reqURL := c.baseURL.ResolveReference(ep.URL())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, &neterr.TransportError{Code: neterr.CodeBadURL, Op: ep.Path, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "url", reqURL.String(), "error", err)
		return nil, neterr.Wrap(ep.Path, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request complete",
		"url", reqURL.String(),
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)
	if resp.StatusCode >= 400 {
		return nil, neterr.StatusError(ep.String(), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, neterr.Wrap(ep.Path, fmt.Errorf("read response: %w", err))
	}
	if int64(len(body)) > maxBodyBytes {
		return nil, &neterr.TransportError{Code: neterr.CodeBadServerResponse, Op: ep.Path, Err: fmt.Errorf("response exceeds %d bytes", maxBodyBytes)}
	}
	if len(body) == 0 {
		return nil, &neterr.TransportError{Code: neterr.CodeZeroByteResource, Op: ep.Path, Err: errors.New("empty response body")}
	}
	return body, nil
}

func limitRedirects(_ *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return neterr.ErrTooManyRedirects
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api base url %q has no host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
