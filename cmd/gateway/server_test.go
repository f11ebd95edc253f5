package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dheirav/SaleSnipe-sub001/internal/api"
	"github.com/Dheirav/SaleSnipe-sub001/pkg/logger"
)

type fakeProbe struct {
	health *api.Health
	err    error
}

func (f *fakeProbe) CheckHealth(ctx context.Context) (*api.Health, error) {
	return f.health, f.err
}

func quietLogger() *logger.Logger {
	log := logger.NewDefault("gateway-test")
	log.SetOutput(io.Discard)
	return log
}

func newTestServer(t *testing.T, backendURL string, probe backendProber) *httptest.Server {
	t.Helper()
	srv, err := newServer(backendURL, probe, quietLogger())
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth_ReadyWhenBackendHealthy(t *testing.T) {
	ts := newTestServer(t, "http://localhost:1", &fakeProbe{health: &api.Health{Status: "healthy"}})

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" || body["backend"] != "healthy" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestHealth_DegradedWhenBackendDown(t *testing.T) {
	ts := newTestServer(t, "http://localhost:1", &fakeProbe{err: errors.New("connection refused")})

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestProxy_ForwardsAPIRequests(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/search" {
			t.Errorf("unexpected proxied path %s", r.URL.Path)
		}
		w.Write([]byte(`{"products":[]}`))
	}))
	defer backend.Close()

	ts := newTestServer(t, backend.URL, &fakeProbe{health: &api.Health{Status: "healthy"}})

	resp, err := http.Get(ts.URL + "/api/products/search?query=laptop")
	if err != nil {
		t.Fatalf("GET through proxy: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 via proxy, got %d", resp.StatusCode)
	}
}

func TestProxy_BackendUnreachable(t *testing.T) {
	// A port nothing listens on.
	ts := newTestServer(t, "http://127.0.0.1:1", &fakeProbe{err: errors.New("down")})

	resp, err := http.Get(ts.URL + "/api/products/search")
	if err != nil {
		t.Fatalf("GET through proxy: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestCORS_AllowsKnownOrigin(t *testing.T) {
	ts := newTestServer(t, "http://localhost:1", &fakeProbe{health: &api.Health{Status: "healthy"}})

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS preflight: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 preflight, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
}

func TestCORS_RejectsUnknownOrigin(t *testing.T) {
	ts := newTestServer(t, "http://localhost:1", &fakeProbe{health: &api.Health{Status: "healthy"}})

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with origin: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown origin, got %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, "http://localhost:1", &fakeProbe{health: &api.Health{Status: "healthy"}})

	// Record at least one instrumented request before scraping.
	if warm, err := http.Get(ts.URL + "/health"); err == nil {
		warm.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "salesnipe_gateway_requests_total") {
		t.Fatal("expected gateway collectors in metrics exposition")
	}
}

func TestAPIPrefixStripped(t *testing.T) {
	cases := map[string]string{
		"http://localhost:5000/api":  "http://localhost:5000",
		"http://localhost:5000/api/": "http://localhost:5000",
		"http://localhost:5000":      "http://localhost:5000",
	}
	for in, want := range cases {
		if got := apiPrefixStripped(in); got != want {
			t.Errorf("apiPrefixStripped(%q) = %q, want %q", in, got, want)
		}
	}
}
