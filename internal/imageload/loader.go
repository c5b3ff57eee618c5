// Package imageload fetches recipe thumbnails.
//
// A Loader keeps recently fetched bytes in a bounded LRU cache for the life
// of the process and coalesces concurrent requests for the same URL. A caller
// that gives up (its context is cancelled) stops waiting at once; the shared
// download continues for any other waiter and still fills the cache.
package imageload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/schrockblock/recipes/internal/neterr"
)

const (
	DefaultCacheEntries = 256
	defaultTimeout      = 15 * time.Second
	defaultUserAgent    = "recipes/0.1"
	maxImageBytes       = 10 << 20
)

// Options configures a Loader.
type Options struct {
	CacheEntries      int
	RequestsPerSecond float64
	Timeout           time.Duration
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// Loader fetches image bytes over HTTP.
type Loader struct {
	http    *http.Client
	cache   *lru.Cache[string, []byte]
	group   singleflight.Group
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New builds a Loader.
func New(opts Options) (*Loader, error) {
	entries := opts.CacheEntries
	if entries <= 0 {
		entries = DefaultCacheEntries
	}
	cache, err := lru.New[string, []byte](entries)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Loader{http: client, cache: cache, logger: logger}
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		l.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return l, nil
}

// Cached returns the bytes for rawURL if they are in the cache.
func (l *Loader) Cached(rawURL string) ([]byte, bool) {
	return l.cache.Get(rawURL)
}

// Load returns the bytes at rawURL. Failures are *neterr.TransportError.
func (l *Loader) Load(ctx context.Context, rawURL string) ([]byte, error) {
	if data, ok := l.cache.Get(rawURL); ok {
		return data, nil
	}
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	ch := l.group.DoChan(rawURL, func() (any, error) {
		data, err := l.download(context.WithoutCancel(ctx), rawURL)
		if err != nil {
			return nil, err
		}
		l.cache.Add(rawURL, data)
		return data, nil
	})
	select {
	case <-ctx.Done():
		return nil, neterr.Wrap(rawURL, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (l *Loader) download(ctx context.Context, rawURL string) ([]byte, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, neterr.Wrap(rawURL, fmt.Errorf("wait for rate limiter: %w", err))
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &neterr.TransportError{Code: neterr.CodeBadURL, Op: rawURL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "image/*")
	req.Header.Set("User-Agent", defaultUserAgent)

	start := time.Now()
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, neterr.Wrap(rawURL, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, neterr.StatusError(rawURL, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, neterr.Wrap(rawURL, fmt.Errorf("read image: %w", err))
	}
	if int64(len(data)) > maxImageBytes {
		return nil, &neterr.TransportError{Code: neterr.CodeBadServerResponse, Op: rawURL, Err: fmt.Errorf("image exceeds %d bytes", maxImageBytes)}
	}
	if len(data) == 0 {
		return nil, &neterr.TransportError{Code: neterr.CodeZeroByteResource, Op: rawURL, Err: errors.New("empty image body")}
	}
	l.logger.Debug("image loaded", "url", rawURL, "bytes", len(data), "elapsed", time.Since(start))
	return data, nil
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &neterr.TransportError{Code: neterr.CodeBadURL, Op: rawURL, Err: fmt.Errorf("parse image url: %w", err)}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &neterr.TransportError{Code: neterr.CodeBadURL, Op: rawURL, Err: fmt.Errorf("unsupported image url %q", rawURL)}
	}
	return nil
}
