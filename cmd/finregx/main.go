// FinRegX - Regulatory readiness assessment for fintech startups.
// Copyright (c) 2025 regtech-labs
// Licensed under the Apache License 2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/philippgille/chromem-go"
	"github.com/regtech-labs/finregx/internal/api"
	"github.com/regtech-labs/finregx/internal/bus"
	"github.com/regtech-labs/finregx/internal/cache"
	"github.com/regtech-labs/finregx/internal/domain"
	"github.com/regtech-labs/finregx/internal/gaps"
	"github.com/regtech-labs/finregx/internal/pipeline"
	"github.com/regtech-labs/finregx/internal/repository"
	"github.com/regtech-labs/finregx/internal/semantic"
	"github.com/regtech-labs/finregx/internal/worker"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	// Initialize structured logger
	logLevel := slog.LevelInfo
	if os.Getenv("FINREGX_DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Log startup
	slog.Info("starting finregx",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)

	// Load configuration
	cfg := domain.DefaultConfig()

	// Check for Pro tier via environment
	if os.Getenv("FINREGX_TIER") == "pro" {
		cfg = domain.ProConfig()
		slog.Info("running in Pro tier mode")
	}
	if os.Getenv("FINREGX_SEMANTIC") == "true" {
		cfg.Semantic.Enabled = true
	}

	slog.Info("configuration loaded",
		"tier", cfg.Tier,
		"repository", cfg.Repository.Driver,
		"cache", cfg.Cache.Type,
		"eventbus", cfg.EventBus.Type,
		"semantic", cfg.Semantic.Enabled,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Initialize Repository
	repo, err := repository.New(cfg.Repository)
	if err != nil {
		slog.Error("failed to initialize repository", "error", err)
		os.Exit(1)
	}
	defer repo.Close()
	slog.Info("repository initialized", "driver", cfg.Repository.Driver)

	// Initialize Cache
	cacheImpl, err := cache.New(cfg.Cache)
	if err != nil {
		slog.Error("failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer cacheImpl.Close()
	slog.Info("cache initialized", "type", cfg.Cache.Type)

	// Initialize EventBus
	busImpl, err := bus.New(cfg.EventBus)
	if err != nil {
		slog.Error("failed to initialize event bus", "error", err)
		os.Exit(1)
	}
	defer busImpl.Close()
	slog.Info("event bus initialized", "type", cfg.EventBus.Type)

	// Initialize custom check engine
	checks, err := gaps.NewCheckEngine(100)
	if err != nil {
		slog.Error("failed to initialize check engine", "error", err)
		os.Exit(1)
	}
	defer checks.Close()

	// Load checks from database (no hardcoded defaults - configure via API)
	if err := loadChecksFromDatabase(ctx, repo, checks); err != nil {
		slog.Error("failed to load checks", "error", err)
		os.Exit(1)
	}
	slog.Info("check engine initialized", "checks_count", checks.ChecksCount())

	// Initialize semantic article mapper (optional; needs an embedding backend)
	var mapper *semantic.Mapper
	if cfg.Semantic.Enabled {
		mapper, err = semantic.NewMapper(ctx, chromem.NewEmbeddingFuncDefault(), logger)
		if err != nil {
			slog.Error("failed to initialize semantic mapper", "error", err)
			os.Exit(1)
		}
		slog.Info("semantic mapper initialized", "threshold", cfg.Semantic.Threshold)
	}

	// Initialize assessment pipeline
	processor := pipeline.NewProcessor(checks, mapper, cfg.Semantic.Threshold)
	slog.Info("assessment pipeline initialized")

	// Initialize async Worker (Pro tier)
	async := cfg.Tier == domain.TierPro || os.Getenv("FINREGX_ASYNC_WORKER") == "true"
	var asyncWorker *worker.Worker
	if async {
		asyncWorker = worker.NewWorker(busImpl, repo, cacheImpl, processor)

		// Get tenant IDs to process (from environment or default)
		tenantIDs := []string{}
		if envTenants := os.Getenv("FINREGX_TENANTS"); envTenants != "" {
			tenantIDs = strings.Split(envTenants, ",")
		}

		workerCfg := worker.Config{
			TenantIDs: tenantIDs,
			ResultTTL: time.Hour,
		}

		if err := asyncWorker.Start(workerCfg); err != nil {
			slog.Error("failed to start async worker", "error", err)
		} else {
			slog.Info("async worker started", "tenant_count", len(tenantIDs))
		}
	}

	// Initialize Server
	srv := api.NewServer(cfg.Server, cfg.Throttle, repo, cacheImpl, busImpl, checks, processor, Version, async)

	// Start Server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("finregx is ready",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	printBanner(cfg, Version)

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	// Stop async worker first
	if asyncWorker != nil {
		if err := asyncWorker.Stop(); err != nil {
			slog.Error("failed to stop async worker", "error", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("finregx shutdown complete")
}

// GlobalTenantID is used for checks that apply to all tenants.
const GlobalTenantID = "*"

// loadChecksFromDatabase loads custom checks from the database into the engine.
// All checks must be configured via POST /checks API - no hardcoded defaults.
func loadChecksFromDatabase(ctx context.Context, repo domain.Repository, engine *gaps.CheckEngine) error {
	dbChecks, err := repo.ListCheckConfigs(ctx, GlobalTenantID)
	if err != nil {
		slog.Warn("failed to list checks from database", "error", err)
		return nil // Start with empty checks - they can be added via API
	}

	if len(dbChecks) > 0 {
		slog.Info("loading checks from database", "count", len(dbChecks))
		return engine.LoadChecks(dbChecks)
	}

	slog.Info("no custom checks in database - configure via POST /checks API")
	return nil
}

func printBanner(cfg *domain.Config, version string) {
	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════╗")
	fmt.Println("  ║               🏛️  FINREGX                  ║")
	fmt.Println("  ║   Regulatory Readiness Assessment Engine   ║")
	fmt.Println("  ║      Know your gaps before QCB does.       ║")
	fmt.Println("  ╚═══════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("  Version:  %s\n", version)
	fmt.Printf("  Tier:     %s\n", cfg.Tier)
	fmt.Printf("  Server:   http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println()
	fmt.Println("  Endpoints:")
	fmt.Println("    POST /assessments                - Create an assessment")
	fmt.Println("    POST /assessments/{id}/documents - Submit documents for analysis")
	fmt.Println("    GET  /assessments/{id}           - Get assessment result")
	fmt.Println("    GET  /assessments                - List assessments")
	fmt.Println("    GET  /articles                   - List regulatory articles")
	fmt.Println("    GET  /capital-requirements       - List capital minimums")
	fmt.Println("    GET  /resources                  - List experts and programs")
	fmt.Println("    GET  /checks                     - List custom checks")
	fmt.Println("    POST /checks                     - Create a custom check")
	fmt.Println("    POST /checks/reload              - Hot-reload checks from database")
	fmt.Println("    GET  /health                     - Health check")
	fmt.Println()
}
