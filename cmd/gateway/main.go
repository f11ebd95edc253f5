// Package main implements the deployment gateway that fronts the SaleSnipe
// backend: readiness checks, Prometheus metrics, and an API reverse proxy
// with CORS for browser clients.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dheirav/SaleSnipe-sub001/internal/api"
	"github.com/Dheirav/SaleSnipe-sub001/internal/config"
	"github.com/Dheirav/SaleSnipe-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewDefault("gateway").WithError(err).Error("load configuration")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Component: "gateway", Level: cfg.LogLevel})

	probe, err := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Retry:   api.RetryPolicy{MaxAttempts: 1},
		Logger:  log,
	})
	if err != nil {
		log.WithError(err).Error("create backend probe client")
		os.Exit(1)
	}

	srv, err := newServer(apiPrefixStripped(cfg.APIBaseURL), probe, log)
	if err != nil {
		log.WithError(err).Error("create gateway server")
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.GatewayAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", cfg.GatewayAddr).Info("gateway listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("gateway server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("graceful shutdown incomplete")
	}
}
