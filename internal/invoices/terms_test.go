package invoices

import (
	"testing"
	"time"
)

func TestDueDateFromTerms(t *testing.T) {
	ref := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		terms PaymentTerms
		days  int
	}{
		{TermsDueOnReceipt, 0},
		{TermsNet15, 15},
		{TermsNet30, 30},
		{TermsNet60, 60},
		{PaymentTerms("whenever"), 30},
		{PaymentTerms(""), 30},
	}
	for _, tc := range cases {
		got := DueDateFromTerms(tc.terms, ref)
		want := ref.AddDate(0, 0, tc.days)
		if !got.Equal(want) {
			t.Fatalf("terms %q: expected %s got %s", tc.terms, want, got)
		}
	}
}

func TestCalculateLateFeeOverdue(t *testing.T) {
	today := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	due := today.AddDate(0, 0, -10)

	fee, days := CalculateLateFee(1000, due, 5, today)
	if fee != 50.0 {
		t.Fatalf("expected fee 50.00 got %.2f", fee)
	}
	if days != 10 {
		t.Fatalf("expected 10 days overdue got %d", days)
	}
}

func TestCalculateLateFeeNotYetDue(t *testing.T) {
	today := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	fee, days := CalculateLateFee(1000, today.AddDate(0, 0, 10), 5, today)
	if fee != 0 || days != 0 {
		t.Fatalf("expected zero fee before due date, got fee=%.2f days=%d", fee, days)
	}

	// Due today owes nothing, regardless of time of day.
	fee, days = CalculateLateFee(1000, today.Add(-6*time.Hour), 5, today)
	if fee != 0 || days != 0 {
		t.Fatalf("expected zero fee on the due date, got fee=%.2f days=%d", fee, days)
	}
}

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		{Description: "Design", Quantity: 10, UnitPrice: 80},
		{Description: "Hosting", Quantity: 1, UnitPrice: 200},
	}
	subtotal, tax, total := ComputeTotals(items, 10)
	if subtotal != 1000 {
		t.Fatalf("expected subtotal 1000 got %.2f", subtotal)
	}
	if tax != 100 {
		t.Fatalf("expected tax 100 got %.2f", tax)
	}
	if total != 1100 {
		t.Fatalf("expected total 1100 got %.2f", total)
	}

	subtotal, tax, total = ComputeTotals(nil, 10)
	if subtotal != 0 || tax != 0 || total != 0 {
		t.Fatal("expected all-zero totals for no items")
	}
}
