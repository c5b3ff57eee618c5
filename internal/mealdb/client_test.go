package mealdb

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/schrockblock/recipes/internal/neterr"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com/api/json/v1/1?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "/api/json/v1/1/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http:///nohost"); err == nil {
		t.Fatalf("parseBaseURL accepted url without host")
	}
}

func TestClient_PerformResolvesEndpoints(t *testing.T) {
	t.Parallel()

	var gotPaths []string
	var gotQueries []url.Values
	var gotUserAgent, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		gotQueries = append(gotQueries, r.URL.Query())
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"meals":null}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/json/v1/1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	body, err := c.Perform(ctx, ListEndpoint("Seafood"))
	if err != nil {
		t.Fatalf("Perform(list) returned error: %v", err)
	}
	if string(body) != `{"meals":null}` {
		t.Fatalf("body = %q", body)
	}
	if _, err := c.Perform(ctx, LookupEndpoint("52893")); err != nil {
		t.Fatalf("Perform(lookup) returned error: %v", err)
	}

	if len(gotPaths) != 2 {
		t.Fatalf("requests = %d, want 2", len(gotPaths))
	}
	if gotPaths[0] != "/api/json/v1/1/filter.php" || gotQueries[0].Get("c") != "Seafood" {
		t.Fatalf("list request = %s?%s", gotPaths[0], gotQueries[0].Encode())
	}
	if gotPaths[1] != "/api/json/v1/1/lookup.php" || gotQueries[1].Get("i") != "52893" {
		t.Fatalf("lookup request = %s?%s", gotPaths[1], gotQueries[1].Encode())
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
}

func TestClient_StatusErrorCarriesCode(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Perform(context.Background(), ListEndpoint(""))
	var te *neterr.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *neterr.TransportError", err)
	}
	if te.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", te.Code)
	}
	if want := "api filter.php?c=Dessert returned status 403"; te.Err.Error() != want {
		t.Fatalf("message = %q, want %q", te.Err.Error(), want)
	}
}

func TestClient_EmptyBodyIsZeroByteResource(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Perform(context.Background(), ListEndpoint(""))
	if got := neterr.CodeOf(err); got != neterr.CodeZeroByteResource {
		t.Fatalf("code = %d, want %d", got, neterr.CodeZeroByteResource)
	}
}

func TestClient_OversizedBodyIsBadServerResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int
		want int
	}{
		{maxBodyBytes, 0},
		{maxBodyBytes + 1, neterr.CodeBadServerResponse},
	}
	for _, tt := range tests {
		body := bytes.Repeat([]byte(" "), tt.size)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(body)
		}))
		t.Cleanup(server.Close)

		c, err := NewClient(server.URL)
		if err != nil {
			t.Fatalf("NewClient returned error: %v", err)
		}
		got, err := c.Perform(context.Background(), ListEndpoint(""))
		if tt.want == 0 {
			if err != nil || len(got) != tt.size {
				t.Fatalf("Perform(%d bytes) = %d bytes, %v; want full body", tt.size, len(got), err)
			}
			continue
		}
		if code := neterr.CodeOf(err); code != tt.want {
			t.Fatalf("Perform(%d bytes) code = %d, want %d", tt.size, code, tt.want)
		}
	}
}

func TestClient_CancelledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithRateLimit(0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Perform(ctx, ListEndpoint(""))
	if got := neterr.CodeOf(err); got != neterr.CodeCancelled {
		t.Fatalf("code = %d, want %d (err=%v)", got, neterr.CodeCancelled, err)
	}
}

func TestClient_RedirectLoop(t *testing.T) {
	t.Parallel()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+r.URL.Path, http.StatusFound)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Perform(context.Background(), ListEndpoint(""))
	if got := neterr.CodeOf(err); got != neterr.CodeTooManyRedirects {
		t.Fatalf("code = %d, want %d (err=%v)", got, neterr.CodeTooManyRedirects, err)
	}
}

func TestClient_RateLimitPacesRequests(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithRateLimit(20))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := c.Perform(context.Background(), ListEndpoint("")); err != nil {
			t.Fatalf("Perform returned error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("3 requests at 20/s took %v, want >= 80ms", elapsed)
	}
}

func TestNilClientPerform(t *testing.T) {
	var c *Client
	if _, err := c.Perform(context.Background(), ListEndpoint("")); err == nil {
		t.Fatalf("Perform on nil client returned nil error")
	}
}
