package invoices

import "time"

// PaymentTerms is the agreed payment window for an invoice.
type PaymentTerms string

const (
	TermsDueOnReceipt PaymentTerms = "due_on_receipt"
	TermsNet15        PaymentTerms = "net_15"
	TermsNet30        PaymentTerms = "net_30"
	TermsNet60        PaymentTerms = "net_60"
)

// termDays maps terms to their day offset. Unknown terms fall back to 30.
var termDays = map[PaymentTerms]int{
	TermsDueOnReceipt: 0,
	TermsNet15:        15,
	TermsNet30:        30,
	TermsNet60:        60,
}

// DueDateFromTerms returns the due date for the given terms relative to
// the reference date.
func DueDateFromTerms(terms PaymentTerms, ref time.Time) time.Time {
	days, ok := termDays[terms]
	if !ok {
		days = 30
	}
	return ref.AddDate(0, 0, days)
}

// CalculateLateFee returns the late fee owed on an invoice total once its
// due date has passed, along with the number of whole days overdue.
// Dates are compared at day granularity; an invoice due today owes nothing.
func CalculateLateFee(total float64, dueDate time.Time, feePercent float64, today time.Time) (fee float64, daysOverdue int) {
	due := startOfDay(dueDate)
	now := startOfDay(today)
	if !now.After(due) {
		return 0, 0
	}
	daysOverdue = int(now.Sub(due).Hours() / 24)
	fee = total * feePercent / 100
	return fee, daysOverdue
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
