// Package invoices manages invoice records: numbering, due dates, late
// fees, status lifecycle and the capped history.
package invoices

import "time"

// Status enumerates the invoice lifecycle.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusViewed  Status = "viewed"
	StatusOverdue Status = "overdue"
	StatusPaid    Status = "paid"
)

// allowedTransitions maps each status to the statuses it may move to.
// "overdue" is only ever derived by the sweep, never requested directly
// on a draft.
var allowedTransitions = map[Status][]Status{
	StatusDraft:   {StatusSent, StatusPaid},
	StatusSent:    {StatusViewed, StatusPaid, StatusOverdue},
	StatusViewed:  {StatusPaid, StatusOverdue},
	StatusOverdue: {StatusPaid},
	StatusPaid:    {},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// LineItem is one billed row on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Invoice is a stored billing document. Subtotal, tax and total are
// computed once at creation and kept as a snapshot.
type Invoice struct {
	ID           string     `json:"id"`
	Number       string     `json:"invoiceNumber"`
	ClientID     string     `json:"clientId,omitempty"`
	ClientName   string     `json:"clientName"`
	ClientEmail  string     `json:"clientEmail,omitempty"`
	Items        []LineItem `json:"items,omitempty"`
	Subtotal     float64    `json:"subtotal"`
	Tax          float64    `json:"tax"`
	Total        float64    `json:"total"`
	Currency     string     `json:"currency"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	DueDate      time.Time  `json:"dueDate"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`
	RenderedHTML string     `json:"renderedHtml,omitempty"`
	PaymentLink  string     `json:"paymentLink,omitempty"`
}

// ComputeTotals derives subtotal, tax and total from line items and a
// percentage tax rate: subtotal = Σ(quantity × unitPrice),
// tax = subtotal × rate/100, total = subtotal + tax.
func ComputeTotals(items []LineItem, taxRate float64) (subtotal, tax, total float64) {
	for _, item := range items {
		subtotal += item.Quantity * item.UnitPrice
	}
	tax = subtotal * taxRate / 100
	total = subtotal + tax
	return subtotal, tax, total
}
