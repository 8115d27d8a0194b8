package export

// MonthRevenue is one calendar-month revenue bucket.
type MonthRevenue struct {
	Month  string  `json:"month"` // "YYYY-MM"
	Amount float64 `json:"amount"`
}

// ClientTotal pairs a client name with its summed invoice total.
type ClientTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// Summary is the aggregate view over the invoice history.
type Summary struct {
	TotalInvoiced    float64 `json:"totalInvoiced"`
	TotalPaid        float64 `json:"totalPaid"`
	TotalOutstanding float64 `json:"totalOutstanding"`
	TotalOverdue     float64 `json:"totalOverdue"`

	InvoiceCount int `json:"invoiceCount"`
	PaidCount    int `json:"paidCount"`
	OverdueCount int `json:"overdueCount"`

	AverageTimeToPayDays float64 `json:"averageTimeToPayDays"`
	CollectionRate       float64 `json:"collectionRate"`

	CurrencyBreakdown map[string]float64 `json:"currencyBreakdown"`
	MonthlyRevenue    []MonthRevenue     `json:"monthlyRevenue"`
	TopClients        []ClientTotal      `json:"topClients"`
}
