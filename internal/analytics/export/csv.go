package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteSummaryCSV serialises the dashboard summary to a CSV representation:
// a headline metric block followed by the monthly revenue and top client
// sections.
func WriteSummaryCSV(w io.Writer, summary Summary) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}
	records := [][]string{
		{"Total Invoiced", formatFloat(summary.TotalInvoiced)},
		{"Total Paid", formatFloat(summary.TotalPaid)},
		{"Total Outstanding", formatFloat(summary.TotalOutstanding)},
		{"Total Overdue", formatFloat(summary.TotalOverdue)},
		{"Invoice Count", strconv.Itoa(summary.InvoiceCount)},
		{"Paid Count", strconv.Itoa(summary.PaidCount)},
		{"Overdue Count", strconv.Itoa(summary.OverdueCount)},
		{"Average Days To Pay", formatFloat(summary.AverageTimeToPayDays)},
		{"Collection Rate", formatFloat(summary.CollectionRate)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{}); err != nil {
		return err
	}
	if err := writer.Write([]string{"Month", "Revenue"}); err != nil {
		return err
	}
	for _, point := range summary.MonthlyRevenue {
		if err := writer.Write([]string{point.Month, formatFloat(point.Amount)}); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{}); err != nil {
		return err
	}
	if err := writer.Write([]string{"Client", "Total"}); err != nil {
		return err
	}
	for _, client := range summary.TopClients {
		if err := writer.Write([]string{client.Name, formatFloat(client.Total)}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
