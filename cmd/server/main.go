// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

// Package main is the entry point for the Vigor server.
//
// Vigor is a self-hosted fitness and nutrition tracker: accounts, per-user
// food, exercise, water and sleep logs, calorie reports by day, ISO week and
// month, goal progress, and calorie lookup via the Nutritionix API.
//
// The server initializes components in order:
//
//  1. Configuration: Koanf v2 layering of defaults, config file and env vars
//  2. Store: BadgerDB (or in-memory for development)
//  3. Auth: JWT session tokens and bcrypt credential storage
//  4. Nutrition: rate-limited Nutritionix client behind a circuit breaker
//  5. HTTP server: chi router under a suture supervisor tree
//
// Graceful shutdown is driven by SIGINT/SIGTERM: the supervisor tree is
// canceled, the HTTP server drains in-flight requests, and the store is
// closed last.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vigortrack/vigor/internal/api"
	"github.com/vigortrack/vigor/internal/auth"
	"github.com/vigortrack/vigor/internal/config"
	"github.com/vigortrack/vigor/internal/logging"
	"github.com/vigortrack/vigor/internal/nutrition"
	"github.com/vigortrack/vigor/internal/store"
	"github.com/vigortrack/vigor/internal/supervisor"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("store_backend", cfg.Store.Backend).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Vigor")

	gw, err := store.New(cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := gw.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	jwtMgr, err := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.SessionTimeout)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token manager")
	}
	authSvc := auth.NewService(gw, jwtMgr, cfg.Security)

	resolver := nutrition.NewClient(cfg.Nutritionix)
	if cfg.Nutritionix.AppID == "" {
		logging.Warn().Msg("Nutritionix credentials not configured, calorie lookup will fail upstream")
	}

	handler := api.NewHandler(gw, authSvc, resolver)
	router := api.NewRouter(handler, jwtMgr, cfg.Security)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// The supervisor tree logs through slog; bridge it to zerolog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	if bs, ok := gw.(*store.BadgerStore); ok {
		tree.AddDataService(store.NewGCService(bs, cfg.Store.GCInterval))
		logging.Info().Dur("interval", cfg.Store.GCInterval).Msg("Badger GC service added")
	}
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Vigor stopped gracefully")
}
