package main

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/Dheirav/SaleSnipe-sub001/internal/api"
	"github.com/Dheirav/SaleSnipe-sub001/internal/cache"
	"github.com/Dheirav/SaleSnipe-sub001/internal/config"
	"github.com/Dheirav/SaleSnipe-sub001/internal/currency"
	"github.com/Dheirav/SaleSnipe-sub001/internal/session"
	"github.com/Dheirav/SaleSnipe-sub001/pkg/logger"
)

// app wires the client stack once per invocation: config, session, the
// request client with the session registered as token source and 401 hook,
// and the currency converter.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	client *api.Client
	sess   *session.Manager
	conv   *currency.Converter
	search *cache.SearchCache

	ratesOnce sync.Once
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{Component: "salesnipe", Level: cfg.LogLevel})

	tokenPath, err := cfg.ResolveTokenPath()
	if err != nil {
		return nil, err
	}
	sess := session.NewManager(session.NewFileStore(tokenPath), log)

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	client, err := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Retry: api.RetryPolicy{
			MaxAttempts: cfg.RetryAttempts,
			BaseDelay:   cfg.RetryBaseDelay,
		},
		Token:          sess,
		OnUnauthorized: sess.OnUnauthorized,
		Limiter:        limiter,
		Logger:         log,
	})
	if err != nil {
		return nil, err
	}

	if err := sess.Bootstrap(ctx, client); err != nil {
		return nil, err
	}

	display := cfg.DisplayCurrency
	if u := sess.User(); u != nil && u.Preferences.DisplayCurrency != "" {
		display = u.Preferences.DisplayCurrency
	}

	provider, err := currency.NewHTTPProvider(nil, cfg.RatesURL)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		log:    log,
		client: client,
		sess:   sess,
		conv:   currency.New(display, provider, log),
		search: cache.NewSearchCache(),
	}, nil
}

// loadRates fetches the exchange-rate table once per invocation, before the
// first price is rendered. Failure is tolerated: conversion fails open and
// prices render in their source currency.
func (a *app) loadRates(ctx context.Context) {
	a.ratesOnce.Do(func() {
		_ = a.conv.Refresh(ctx)
	})
}
