package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/billforge/billforge/internal/analytics"
)

// AnalyticsWarmupJob pre-populates the summary cache so the first
// dashboard hit after an idle period stays fast.
type AnalyticsWarmupJob struct {
	Analytics *analytics.Service
	Logger    *slog.Logger
}

// NewAnalyticsWarmupJob wires dependencies for the warmup handler.
func NewAnalyticsWarmupJob(svc *analytics.Service, logger *slog.Logger) *AnalyticsWarmupJob {
	return &AnalyticsWarmupJob{Analytics: svc, Logger: logger}
}

// Handle processes analytics warmup tasks.
func (j *AnalyticsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Analytics == nil {
		return errors.New("analytics warmup: handler not configured")
	}
	var payload AnalyticsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	warmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	summary, err := j.Analytics.GetSummary(warmCtx)
	if err != nil {
		j.logger().Error("analytics warmup", slog.Any("error", err))
		return err
	}
	j.logger().Info("completed analytics warmup",
		slog.Int("invoices", summary.InvoiceCount),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *AnalyticsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskAnalyticsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskAnalyticsWarmup))
}
