// Package analytics folds the invoice history into dashboard summaries.
package analytics

import (
	"sort"

	"github.com/billforge/billforge/internal/analytics/export"
	"github.com/billforge/billforge/internal/invoices"
)

// TopClientCount is how many clients the ranking keeps.
const TopClientCount = 5

// The summary types live in the export sub-package so the CSV writer can
// reference them without importing this package; the aliases keep the
// analytics-qualified names identical.

// MonthRevenue is one calendar-month revenue bucket.
type MonthRevenue = export.MonthRevenue

// ClientTotal pairs a client name with its summed invoice total.
type ClientTotal = export.ClientTotal

// Summary is the aggregate view over the invoice history.
type Summary = export.Summary

// Summarize folds the invoice collection into a Summary. It is a pure,
// order-independent function: an empty collection yields zero values and
// empty sequences, never an error.
func Summarize(list []invoices.Invoice) Summary {
	summary := Summary{
		CurrencyBreakdown: map[string]float64{},
		MonthlyRevenue:    []MonthRevenue{},
		TopClients:        []ClientTotal{},
	}

	months := map[string]float64{}
	clientTotals := map[string]float64{}
	var payDaysSum float64
	payDaysSamples := 0

	for _, inv := range list {
		summary.TotalInvoiced += inv.Total
		summary.InvoiceCount++
		summary.CurrencyBreakdown[inv.Currency] += inv.Total
		months[inv.CreatedAt.Format("2006-01")] += inv.Total
		clientTotals[inv.ClientName] += inv.Total

		switch inv.Status {
		case invoices.StatusPaid:
			summary.TotalPaid += inv.Total
			summary.PaidCount++
			if inv.PaidAt != nil {
				payDaysSum += inv.PaidAt.Sub(inv.CreatedAt).Hours() / 24
				payDaysSamples++
			}
		case invoices.StatusOverdue:
			summary.TotalOverdue += inv.Total
			summary.TotalOutstanding += inv.Total
		default:
			summary.TotalOutstanding += inv.Total
		}
		if inv.Status == invoices.StatusOverdue {
			summary.OverdueCount++
		}
	}

	// Paid records without a payment timestamp carry no signal; they are
	// excluded from the mean rather than dragging it toward zero.
	if payDaysSamples > 0 {
		summary.AverageTimeToPayDays = payDaysSum / float64(payDaysSamples)
	}
	if summary.TotalInvoiced > 0 {
		summary.CollectionRate = summary.TotalPaid / summary.TotalInvoiced * 100
	}

	for month, amount := range months {
		summary.MonthlyRevenue = append(summary.MonthlyRevenue, MonthRevenue{Month: month, Amount: amount})
	}
	sort.Slice(summary.MonthlyRevenue, func(i, j int) bool {
		return summary.MonthlyRevenue[i].Month < summary.MonthlyRevenue[j].Month
	})

	for name, total := range clientTotals {
		summary.TopClients = append(summary.TopClients, ClientTotal{Name: name, Total: total})
	}
	sort.Slice(summary.TopClients, func(i, j int) bool {
		if summary.TopClients[i].Total != summary.TopClients[j].Total {
			return summary.TopClients[i].Total > summary.TopClients[j].Total
		}
		return summary.TopClients[i].Name < summary.TopClients[j].Name
	})
	if len(summary.TopClients) > TopClientCount {
		summary.TopClients = summary.TopClients[:TopClientCount]
	}

	return summary
}
