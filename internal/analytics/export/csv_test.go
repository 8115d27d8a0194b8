package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge/internal/analytics"
	"github.com/billforge/billforge/internal/analytics/export"
)

func TestWriteSummaryCSV(t *testing.T) {
	summary := analytics.Summary{
		TotalInvoiced:    350,
		TotalPaid:        100,
		TotalOutstanding: 250,
		InvoiceCount:     3,
		PaidCount:        1,
		CollectionRate:   28.571,
		MonthlyRevenue: []analytics.MonthRevenue{
			{Month: "2026-01", Amount: 150},
			{Month: "2026-02", Amount: 200},
		},
		TopClients: []analytics.ClientTotal{
			{Name: "Acme", Total: 300},
			{Name: "Globex", Total: 50},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteSummaryCSV(&buf, summary))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Metric,Value\n"))
	assert.Contains(t, out, "Total Invoiced,350.00")
	assert.Contains(t, out, "Invoice Count,3")
	assert.Contains(t, out, "Collection Rate,28.57")
	assert.Contains(t, out, "2026-01,150.00")
	assert.Contains(t, out, "Client,Total")
	assert.Contains(t, out, "Acme,300.00")
}

func TestWriteSummaryCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteSummaryCSV(&buf, analytics.Summary{}))
	assert.Contains(t, buf.String(), "Total Invoiced,0.00")
}
