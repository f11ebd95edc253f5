package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dheirav/SaleSnipe-sub001/pkg/logger"
)

func testLogger() *logger.Logger {
	log := logger.NewDefault("api-test")
	log.SetOutput(io.Discard)
	return log
}

func newTestClient(t *testing.T, baseURL string, mutate func(*Config)) *Client {
	t.Helper()
	cfg := Config{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Retry:   RetryPolicy{MaxAttempts: 1},
		Logger:  testLogger(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want Bearer tok-123", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(cfg *Config) {
		cfg.Token = TokenFunc(func() string { return "tok-123" })
	})

	if _, err := client.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestClient_NoTokenMeansUnauthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(cfg *Config) {
		cfg.Token = TokenFunc(func() string { return "" })
	})

	if _, err := client.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestClient_UnauthorizedFiresHookExactlyOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer server.Close()

	var cleared int32
	client := newTestClient(t, server.URL, func(cfg *Config) {
		cfg.Retry = RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}
		cfg.OnUnauthorized = func() { atomic.AddInt32(&cleared, 1) }
	})

	_, err := client.Me(context.Background())
	if !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if got := atomic.LoadInt32(&cleared); got != 1 {
		t.Fatalf("hook fired %d times, want exactly 1", got)
	}
}

func TestClient_UnauthorizedOnAuthFlowSkipsHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer server.Close()

	var cleared int32
	client := newTestClient(t, server.URL, func(cfg *Config) {
		cfg.OnUnauthorized = func() { atomic.AddInt32(&cleared, 1) }
	})

	_, err := client.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "nope"})
	if !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if atomic.LoadInt32(&cleared) != 0 {
		t.Fatal("401 on a login call must not clear the stored token")
	}
}

func TestClient_RetriesConnectivityThenSucceeds(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			// Hang past the client timeout so the attempt is a pure
			// timeout failure with no usable response.
			time.Sleep(300 * time.Millisecond)
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer server.Close()

	base := 20 * time.Millisecond
	client := newTestClient(t, server.URL, func(cfg *Config) {
		cfg.Timeout = 50 * time.Millisecond
		cfg.Retry = RetryPolicy{MaxAttempts: 3, BaseDelay: base}
	})

	start := time.Now()
	health, err := client.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("expected success on attempt 3, got %v", err)
	}
	if health.Status != "healthy" {
		t.Fatalf("status = %q", health.Status)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
	if want := base*1 + base*2; time.Since(start) < want {
		t.Fatalf("elapsed %v, want at least %v of backoff", time.Since(start), want)
	}
}

func TestClient_ServerErrorNotRetried(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(cfg *Config) {
		cfg.Retry = RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}
	})

	_, err := client.Me(context.Background())
	if !IsServer(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("5xx must not be retried by the wrapper, got %d attempts", got)
	}
}

func TestClient_ValidationMessageSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"target price must be positive"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	_, err := client.CreateAlert(context.Background(), "p1", -5)
	apiErr, ok := AsError(err)
	if !ok || apiErr.Kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if apiErr.UserMessage() != "target price must be positive" {
		t.Fatalf("UserMessage = %q", apiErr.UserMessage())
	}
}

func TestClient_SearchFallbackServesResult(t *testing.T) {
	var primaryHits, totalHits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&totalHits, 1)
		if n == 1 {
			atomic.AddInt32(&primaryHits, 1)
			// Terminal failure on the primary path; the wrapper must not
			// retry it, but search re-issues through the fallback.
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"products":[{"id":"p1","title":"mechanical keyboard","currentPrice":49.99,"currency":"USD"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	products, err := client.Search(context.Background(), "keyboard")
	if err != nil {
		t.Fatalf("search should be served by the fallback, got %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("unexpected products: %#v", products)
	}
	if atomic.LoadInt32(&totalHits) != 2 {
		t.Fatalf("expected exactly one fallback re-issue, got %d hits", totalHits)
	}
}

func TestClient_SearchFallbackFailureSurfacesPrimaryError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"plan limit reached"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	_, err := client.Search(context.Background(), "keyboard")
	if !IsForbidden(err) {
		t.Fatalf("expected the primary classification to surface, got %v", err)
	}
}

func TestClient_InsightFailuresCollapseToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	if _, err := client.Prediction(context.Background(), "p1"); !IsUnavailable(err) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := client.Sentiment(context.Background(), "p1"); !IsUnavailable(err) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestClient_FacadeRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /auth/login":
			w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","name":"Dana","email":"d@e.f","preferences":{"displayCurrency":"EUR"}}}`))
		case "GET /watchlist":
			w.Write([]byte(`{"watchlist":[{"product":{"id":"p1","title":"monitor","currentPrice":120,"currency":"USD"}}]}`))
		case "DELETE /watchlist/p1":
			w.WriteHeader(http.StatusNoContent)
		case "PUT /notifications/read-all":
			w.Write([]byte(`{}`))
		case "GET /collections/deals":
			if got := r.URL.Query().Get("limit"); got != "5" {
				t.Errorf("limit = %q, want 5", got)
			}
			w.Write([]byte(`{"items":[{"title":"ssd","price":{"amount":75.5}}]}`))
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	ctx := context.Background()

	auth, err := client.Login(ctx, LoginRequest{Email: "d@e.f", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if auth.Token != "tok-1" || auth.User.Preferences.DisplayCurrency != "EUR" {
		t.Fatalf("unexpected auth result: %#v", auth)
	}

	entries, err := client.Watchlist(ctx)
	if err != nil || len(entries) != 1 || entries[0].Product.ID != "p1" {
		t.Fatalf("watchlist: %v %#v", err, entries)
	}

	if err := client.UnwatchProduct(ctx, "p1"); err != nil {
		t.Fatalf("unwatch: %v", err)
	}
	if err := client.MarkAllNotificationsRead(ctx); err != nil {
		t.Fatalf("read-all: %v", err)
	}

	items, err := client.CollectionItems(ctx, "deals", 5)
	if err != nil || len(items) != 1 {
		t.Fatalf("collection items: %v %#v", err, items)
	}
	if items[0].Field("title") != "ssd" || items[0].FloatField("price.amount") != 75.5 {
		t.Fatalf("opaque field extraction failed: %s", string(items[0]))
	}
}
