// Package recurring manages reusable invoice templates that advance a
// next-due date on a fixed calendar cadence.
package recurring

import (
	"time"

	"github.com/billforge/billforge/internal/invoices"
)

// Frequency enumerates the supported cadences.
type Frequency string

const (
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// Valid reports whether the frequency is a known cadence.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Biweekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// Template is a reusable invoice blueprint.
type Template struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	ClientID       string                `json:"clientId,omitempty"`
	ClientName     string                `json:"clientName"`
	ClientEmail    string                `json:"clientEmail,omitempty"`
	Items          []invoices.LineItem   `json:"items"`
	Currency       string                `json:"currency"`
	TaxRate        float64               `json:"taxRate"`
	Frequency      Frequency             `json:"frequency"`
	StartDate      time.Time             `json:"startDate"`
	EndDate        *time.Time            `json:"endDate,omitempty"`
	NextDueDate    time.Time             `json:"nextDueDate"`
	PaymentTerms   invoices.PaymentTerms `json:"paymentTerms"`
	LateFeeEnabled bool                  `json:"lateFeeEnabled"`
	LateFeePercent float64               `json:"lateFeePercent,omitempty"`
	IsActive       bool                  `json:"isActive"`
	GeneratedCount int                   `json:"generatedCount"`
	CreatedAt      time.Time             `json:"createdAt"`
}
