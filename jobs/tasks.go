package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskOverdueSweep marks past-due invoices overdue.
	TaskOverdueSweep = "invoices:overdue_sweep"
	// TaskRecurringGenerate issues invoices from due recurring templates.
	TaskRecurringGenerate = "recurring:generate_due"
	// TaskAnalyticsWarmup pre-populates the analytics summary cache.
	TaskAnalyticsWarmup = "analytics:warmup"
)

// OverdueSweepPayload parameterises an overdue sweep run.
type OverdueSweepPayload struct {
	Reason string `json:"reason,omitempty"`
}

// RecurringGeneratePayload parameterises a recurring generation run.
type RecurringGeneratePayload struct {
	Reason string `json:"reason,omitempty"`
}

// AnalyticsWarmupPayload parameterises a cache warmup run.
type AnalyticsWarmupPayload struct {
	Reason string `json:"reason,omitempty"`
}

// NewOverdueSweepTask constructs an Asynq task for the overdue sweep.
func NewOverdueSweepTask(payload OverdueSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOverdueSweep, data), nil
}

// NewRecurringGenerateTask constructs an Asynq task for recurring generation.
func NewRecurringGenerateTask(payload RecurringGeneratePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRecurringGenerate, data), nil
}

// NewAnalyticsWarmupTask constructs an Asynq task for cache warmup.
func NewAnalyticsWarmupTask(payload AnalyticsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalyticsWarmup, data), nil
}
