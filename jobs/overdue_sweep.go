package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/billforge/billforge/internal/invoices"
)

// OverdueSweepJob marks sent or viewed invoices overdue once their due
// date passes.
type OverdueSweepJob struct {
	Invoices *invoices.Service
	Logger   *slog.Logger
}

// NewOverdueSweepJob wires dependencies for the sweep handler.
func NewOverdueSweepJob(svc *invoices.Service, logger *slog.Logger) *OverdueSweepJob {
	return &OverdueSweepJob{Invoices: svc, Logger: logger}
}

// Handle processes overdue sweep tasks.
func (j *OverdueSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Invoices == nil {
		return errors.New("overdue sweep: handler not configured")
	}
	var payload OverdueSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger()
	if payload.Reason != "" {
		logger = logger.With(slog.String("reason", payload.Reason))
	}

	marked, err := j.Invoices.SweepOverdue(ctx)
	if err != nil {
		logger.Error("overdue sweep", slog.Any("error", err))
		return err
	}
	logger.Info("completed overdue sweep", slog.Int("marked", marked))
	return nil
}

func (j *OverdueSweepJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskOverdueSweep))
	}
	return slog.Default().With(slog.String("job", TaskOverdueSweep))
}
