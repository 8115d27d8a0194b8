// Package timetracking records billable work intervals that later become
// invoice line items.
package timetracking

import (
	"fmt"
	"time"

	"github.com/billforge/billforge/internal/invoices"
)

// Entry is one billable work interval. Durations are stored in minutes
// everywhere; the only conversion happens when a running timer is stopped.
type Entry struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"clientId,omitempty"`
	ClientName      string     `json:"clientName"`
	Project         string     `json:"project,omitempty"`
	Task            string     `json:"task"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	HourlyRate      float64    `json:"hourlyRate"`
	Billed          bool       `json:"billed"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Running reports whether the entry is an active timer.
func (e Entry) Running() bool {
	return e.EndTime == nil
}

// Amount is the billable value of the entry.
func (e Entry) Amount() float64 {
	return float64(e.DurationMinutes) / 60 * e.HourlyRate
}

// LineItems converts completed, unbilled entries to invoice line items:
// quantity is hours, unit price is the hourly rate.
func LineItems(entries []Entry) []invoices.LineItem {
	items := make([]invoices.LineItem, 0, len(entries))
	for _, e := range entries {
		if e.Running() || e.Billed {
			continue
		}
		desc := e.Task
		if e.Project != "" {
			desc = e.Project + ": " + desc
		}
		items = append(items, invoices.LineItem{
			Description: desc,
			Quantity:    float64(e.DurationMinutes) / 60,
			UnitPrice:   e.HourlyRate,
		})
	}
	return items
}

// FormatDuration renders minutes as "H:MM" for display.
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
