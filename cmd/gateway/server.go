package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Dheirav/SaleSnipe-sub001/internal/api"
	"github.com/Dheirav/SaleSnipe-sub001/internal/metrics"
	"github.com/Dheirav/SaleSnipe-sub001/pkg/logger"
)

// backendProber is the slice of the SDK the readiness check needs.
type backendProber interface {
	CheckHealth(ctx context.Context) (*api.Health, error)
}

type server struct {
	probe backendProber
	proxy *httputil.ReverseProxy
	log   *logger.Logger
}

func newServer(backendURL string, probe backendProber, log *logger.Logger) (*server, error) {
	backend, err := url.Parse(backendURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend URL: %w", err)
	}

	proxy := httputil.NewSingleHostReverseProxy(backend)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		metrics.RecordProxyError()
		log.WithError(err).WithField("path", r.URL.Path).Warn("proxy request failed")
		jsonError(w, "backend unreachable", http.StatusBadGateway)
	}

	return &server{probe: probe, proxy: proxy, log: log}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.InstrumentHandler)
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", metrics.Handler())
	r.Handle("/api/*", s.proxy)

	return r
}

// handleHealth reports readiness. The gateway is only ready when the backend
// answers its own health endpoint; deployment tooling gates rollout on this.
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	h, err := s.probe.CheckHealth(ctx)
	if err != nil {
		metrics.RecordBackendProbe(false)
		s.log.WithError(err).Warn("backend health probe failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "degraded",
			"backend": "unreachable",
		})
		return
	}

	metrics.RecordBackendProbe(true)
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.Status,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// apiPrefixStripped returns the backend origin without its API prefix, so
// proxied /api/* paths land on the backend's own /api/* routes.
func apiPrefixStripped(baseURL string) string {
	return strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/api")
}
