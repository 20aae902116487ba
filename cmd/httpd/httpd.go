// Package httpd implements the HTTP server for the devotional service.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/gosabda/cmd/common"
	"github.com/jonesrussell/gosabda/internal/api"
	"github.com/jonesrussell/gosabda/internal/api/middleware"
	"github.com/jonesrussell/gosabda/internal/auth"
	"github.com/jonesrussell/gosabda/internal/cache"
	"github.com/jonesrussell/gosabda/internal/metrics"
	"github.com/jonesrussell/gosabda/internal/ratelimit"
	"github.com/jonesrussell/gosabda/internal/scraper"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the devotional API server",
		Long:  `Start the HTTP server exposing the devotional, token and health endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Start()
		},
	}
}

// Start starts the HTTP server and runs until interrupted.
// It handles graceful shutdown on SIGINT or SIGTERM signals.
func Start() error {
	// Phase 1: Initialize dependencies
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	cfg, log := deps.Config, deps.Logger

	// Phase 2: Build services
	fetcher, err := scraper.NewFetcher(&cfg.Scraper, log)
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}
	scraperSvc := scraper.NewService(fetcher, log)
	contentCache := cache.New(&cfg.Cache, log)
	limiter := ratelimit.New(&cfg.Rate, log)
	authSvc := auth.New(&cfg.Auth, cfg.APIKeys(), log)
	mtrcs := metrics.NewMetrics()

	// Phase 3: Start background sweepers, stopped on shutdown
	sweepCtx, stopSweepers := context.WithCancel(context.Background())
	defer stopSweepers()
	go contentCache.Cleanup(sweepCtx)
	go limiter.Cleanup(sweepCtx)

	// Phase 4: Start HTTP server
	handler := api.NewHandler(cfg, log, scraperSvc, contentCache, authSvc, mtrcs)
	chain := middleware.New(limiter, authSvc, mtrcs, log)
	server := api.StartHTTPServer(cfg, log, handler, chain)

	log.Info("Starting HTTP server", "addr", cfg.GetAddress(), "environment", cfg.App.Environment)
	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	// Phase 5: Run server until interrupted
	return runServerUntilInterrupt(log, server, errChan)
}
