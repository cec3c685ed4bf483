// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/supermovie/docs" // Import generated swagger docs
	"github.com/tomtom215/supermovie/internal/aggregator"
	"github.com/tomtom215/supermovie/internal/api"
	"github.com/tomtom215/supermovie/internal/config"
	"github.com/tomtom215/supermovie/internal/logging"
	"github.com/tomtom215/supermovie/internal/supervisor"
	"github.com/tomtom215/supermovie/internal/supervisor/services"
	"github.com/tomtom215/supermovie/internal/upstream"
	"github.com/tomtom215/supermovie/internal/web"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().Str("version", version).Msg("Starting Super Movie with supervisor tree")
	logging.Info().
		Str("omdb_url", cfg.Upstream.Movie.BaseURL).
		Str("dictionary_url", cfg.Upstream.Dictionary.BaseURL).
		Str("trivia_url", cfg.Upstream.Trivia.BaseURL).
		Bool("circuit_breaker", cfg.Breaker.Enabled).
		Msg("Configuration loaded")

	if cfg.Security.RateLimitEnabled {
		logging.Info().
			Int("requests", cfg.Security.RateLimitReqs).
			Dur("window", cfg.Security.RateLimitWindow).
			Msg("Inbound rate limiting enabled")
	}

	sources := upstream.NewSources(cfg)
	agg := aggregator.New(sources)

	handler := api.NewHandler(agg, sources, version)
	handler.SetRequestTimeout(cfg.Server.Timeout)
	chiMW := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	router := api.NewRouter(handler, chiMW, web.Handler())

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Aggregation is cut off at cfg.Server.Timeout; the extra time is for
		// writing the error body.
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewAPIServer(server, server.Addr, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("API service added")

	if cfg.Breaker.Enabled {
		tree.AddBackgroundService(services.NewBreakerMonitorService(sources, 15*time.Second))
		logging.Info().Msg("Circuit breaker monitor added to supervisor tree")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
		stop()
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
