package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/billforge/billforge/internal/analytics"
	"github.com/billforge/billforge/internal/app"
	"github.com/billforge/billforge/internal/business"
	"github.com/billforge/billforge/internal/clients"
	"github.com/billforge/billforge/internal/entitlement"
	"github.com/billforge/billforge/internal/invoices"
	"github.com/billforge/billforge/internal/observability"
	"github.com/billforge/billforge/internal/platform/kv"
	"github.com/billforge/billforge/internal/recurring"
	"github.com/billforge/billforge/internal/shared"
	"github.com/billforge/billforge/internal/timetracking"
	"github.com/billforge/billforge/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	store := kv.NewRedisFromClient(redisClient)
	clock := shared.SystemClock{}
	metrics := observability.NewMetrics()

	analyticsCache := analytics.NewCache(redisClient, cfg.AnalyticsCacheTTL)

	clientService := clients.NewService(clients.NewRepository(store), clock)
	businessService := business.NewService(store)
	sequencer := invoices.NewSequencer(store, clock, logger)
	invoiceRepo := invoices.NewRepository(store)
	invoiceService := invoices.NewService(invoiceRepo, sequencer, invoices.ServiceConfig{
		ClientSaver: clientService,
		Invalidator: analyticsCache,
		Clock:       clock,
		Metrics:     metrics,
		Cap:         cfg.InvoiceCap,
	})
	timeService := timetracking.NewService(timetracking.NewRepository(store), clock)
	recurringService := recurring.NewService(recurring.NewRepository(store), invoiceService, clock)
	analyticsService := analytics.NewService(invoiceRepo, analyticsCache)
	entitlementService := entitlement.NewService(store, clock)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		BusinessHandler:    business.NewHandler(logger, businessService),
		ClientsHandler:     clients.NewHandler(logger, clientService),
		InvoicesHandler:    invoices.NewHandler(logger, invoiceService),
		TimeHandler:        timetracking.NewHandler(logger, timeService),
		RecurringHandler:   recurring.NewHandler(logger, recurringService),
		AnalyticsHandler:   analytics.NewHandler(logger, analyticsService),
		EntitlementHandler: entitlement.NewHandler(logger, entitlementService),
		JobsHandler:        jobs.NewHandler(inspector, logger),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
