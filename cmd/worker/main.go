package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/billforge/billforge/internal/analytics"
	"github.com/billforge/billforge/internal/app"
	"github.com/billforge/billforge/internal/clients"
	"github.com/billforge/billforge/internal/invoices"
	"github.com/billforge/billforge/internal/observability"
	"github.com/billforge/billforge/internal/platform/kv"
	"github.com/billforge/billforge/internal/recurring"
	"github.com/billforge/billforge/internal/shared"
	"github.com/billforge/billforge/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	store := kv.NewRedisFromClient(redisClient)
	clock := shared.SystemClock{}
	metrics := observability.NewMetrics()

	analyticsCache := analytics.NewCache(redisClient, cfg.AnalyticsCacheTTL)
	clientService := clients.NewService(clients.NewRepository(store), clock)
	sequencer := invoices.NewSequencer(store, clock, logger)
	invoiceRepo := invoices.NewRepository(store)
	invoiceService := invoices.NewService(invoiceRepo, sequencer, invoices.ServiceConfig{
		ClientSaver: clientService,
		Invalidator: analyticsCache,
		Clock:       clock,
		Metrics:     metrics,
		Cap:         cfg.InvoiceCap,
	})
	recurringService := recurring.NewService(recurring.NewRepository(store), invoiceService, clock)
	analyticsService := analytics.NewService(invoiceRepo, analyticsCache)

	sweepJob := jobs.NewOverdueSweepJob(invoiceService, logger)
	generateJob := jobs.NewRecurringGenerateJob(recurringService, logger)
	warmupJob := jobs.NewAnalyticsWarmupJob(analyticsService, logger)

	sweepTask, err := jobs.NewOverdueSweepTask(jobs.OverdueSweepPayload{Reason: "cron"})
	if err != nil {
		logger.Error("build sweep task", slog.Any("error", err))
		os.Exit(1)
	}
	generateTask, err := jobs.NewRecurringGenerateTask(jobs.RecurringGeneratePayload{Reason: "cron"})
	if err != nil {
		logger.Error("build generate task", slog.Any("error", err))
		os.Exit(1)
	}
	warmupTask, err := jobs.NewAnalyticsWarmupTask(jobs.AnalyticsWarmupPayload{Reason: "cron"})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskOverdueSweep, Handler: sweepJob.Handle},
			{Type: jobs.TaskRecurringGenerate, Handler: generateJob.Handle},
			{Type: jobs.TaskAnalyticsWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 * * * *", Task: sweepTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "15 1 * * *", Task: generateTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "45 1 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
