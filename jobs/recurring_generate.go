package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/billforge/billforge/internal/recurring"
)

// RecurringGenerateJob issues invoices for every recurring template whose
// next due date has arrived, catching up templates that missed runs.
type RecurringGenerateJob struct {
	Recurring *recurring.Service
	Logger    *slog.Logger
}

// NewRecurringGenerateJob wires dependencies for the generation handler.
func NewRecurringGenerateJob(svc *recurring.Service, logger *slog.Logger) *RecurringGenerateJob {
	return &RecurringGenerateJob{Recurring: svc, Logger: logger}
}

// Handle processes recurring generation tasks.
func (j *RecurringGenerateJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Recurring == nil {
		return errors.New("recurring generate: handler not configured")
	}
	var payload RecurringGeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger()
	if payload.Reason != "" {
		logger = logger.With(slog.String("reason", payload.Reason))
	}

	generated, err := j.Recurring.GenerateDue(ctx)
	if err != nil {
		logger.Error("recurring generate", slog.Any("error", err))
		return err
	}
	logger.Info("completed recurring generation", slog.Int("generated", generated))
	return nil
}

func (j *RecurringGenerateJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskRecurringGenerate))
	}
	return slog.Default().With(slog.String("job", TaskRecurringGenerate))
}
