package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/mobicorp/spaceplanner-backend/api/routes"
	"github.com/mobicorp/spaceplanner-backend/internal/cart"
	"github.com/mobicorp/spaceplanner-backend/internal/inventory"
	"github.com/mobicorp/spaceplanner-backend/internal/planner"
	"github.com/mobicorp/spaceplanner-backend/pkg/config"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
	"github.com/mobicorp/spaceplanner-backend/pkg/metrics"
	"github.com/mobicorp/spaceplanner-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	if !cfg.HasCredential() {
		logg.Warn(logg.WithField(ctx, "provider", cfg.Planner.Provider),
			"generation api key not configured; advisory requests will fail until it is set")
	}

	policy, err := planner.PolicyByName(cfg.Planner.Policy)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	plannerMetrics := metrics.NewPlannerMetrics(registry)

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}

	plannerService, err := planner.NewService(planner.ServiceParams{
		Generator: gen,
		Provider:  cfg.Planner.Provider,
		Model:     cfg.Planner.ModelName(),
		Policy:    policy,
		Timeout:   cfg.Planner.GenerationTimeout,
		Logger:    logg,
		Metrics:   plannerMetrics,
	})
	if err != nil {
		return err
	}

	catalog := inventory.NewClient(inventory.Config{
		BaseURL: cfg.Inventory.BaseURL,
		Timeout: cfg.Inventory.Timeout,
		Logger:  logg,
		Metrics: plannerMetrics,
	})
	if !cfg.Inventory.Enabled() {
		logg.Warn(ctx, "inventory base url not configured; catalog requests will fail")
	}

	var (
		store  cart.Store
		pinger redis.Pinger
	)
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		store = cart.NewRedisStore(redisClient, cfg.Redis.CartTTL, logg)
		pinger = redisClient
	} else {
		logg.Info(ctx, "redis url not configured; carts are kept in memory")
		store = cart.NewMemoryStore()
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Store:   store,
		Catalog: catalog,
		Logger:  logg,
		Metrics: plannerMetrics,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           routes.NewRouter(cfg, logg, registry, pinger, plannerService, cartService, catalog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     server.Addr,
		"provider": cfg.Planner.Provider,
		"policy":   policy.Name,
	})
	logg.Info(logCtx, "starting api server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logg.Info(logCtx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
