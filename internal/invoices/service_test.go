package invoices

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge/internal/platform/httpx"
	"github.com/billforge/billforge/internal/platform/kv"
	"github.com/billforge/billforge/internal/shared"
)

type countingInvalidator struct {
	bumps int
}

func (c *countingInvalidator) Bump(context.Context) error {
	c.bumps++
	return nil
}

func newTestInvoiceService(t *testing.T, now time.Time, cfg ServiceConfig) *Service {
	t.Helper()
	store := kv.NewMemory()
	clock := shared.FixedClock{T: now}
	cfg.Clock = clock
	return NewService(NewRepository(store), NewSequencer(store, clock, nil), cfg)
}

func TestCreateComputesTotalsAndDueDate(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestInvoiceService(t, now, ServiceConfig{})
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInput{
		ClientName: "Acme",
		Items: []LineItem{
			{Description: "Consulting", Quantity: 8, UnitPrice: 125},
		},
		TaxRate:  20,
		Currency: "eur",
		Terms:    TermsNet15,
	})
	require.NoError(t, err)
	require.Equal(t, "INV-2026-001", inv.Number)
	require.Equal(t, 1000.0, inv.Subtotal)
	require.Equal(t, 200.0, inv.Tax)
	require.Equal(t, 1200.0, inv.Total)
	require.Equal(t, "EUR", inv.Currency)
	require.Equal(t, StatusDraft, inv.Status)
	require.True(t, inv.DueDate.Equal(now.AddDate(0, 0, 15)))
	require.NotEmpty(t, inv.ID)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestInvoiceService(t, time.Now(), ServiceConfig{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Items: []LineItem{{Quantity: 1, UnitPrice: 1}}})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(ctx, CreateInput{ClientName: "Acme"})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(ctx, CreateInput{
		ClientName: "Acme",
		Items:      []LineItem{{Quantity: 1, UnitPrice: 1}},
		Currency:   "NOPE",
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	svc := newTestInvoiceService(t, time.Now(), ServiceConfig{Cap: 5})
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, CreateInput{
			ClientName: fmt.Sprintf("Client %d", i),
			Items:      []LineItem{{Description: "Work", Quantity: 1, UnitPrice: 100}},
		})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	require.Equal(t, "Client 2", list[0].ClientName, "oldest evicted first")
	require.Equal(t, "Client 6", list[4].ClientName)
	// Numbering keeps advancing even though records were evicted.
	require.Equal(t, "INV-"+fmt.Sprint(time.Now().Year())+"-007", list[4].Number)
}

func TestStatusTransitions(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestInvoiceService(t, now, ServiceConfig{})
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInput{
		ClientName: "Acme",
		Items:      []LineItem{{Description: "Work", Quantity: 1, UnitPrice: 500}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, inv.ID, StatusViewed)
	require.ErrorIs(t, err, httpx.ErrValidation, "draft cannot jump to viewed")

	sent, err := svc.UpdateStatus(ctx, inv.ID, StatusSent)
	require.NoError(t, err)
	require.Equal(t, StatusSent, sent.Status)
	require.Nil(t, sent.PaidAt)

	paid, err := svc.UpdateStatus(ctx, inv.ID, StatusPaid)
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	require.True(t, paid.PaidAt.Equal(now))

	_, err = svc.UpdateStatus(ctx, inv.ID, StatusSent)
	require.ErrorIs(t, err, httpx.ErrValidation, "paid is terminal")
}

func TestSweepOverdueMarksPastDueOnly(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	store := kv.NewMemory()
	clock := shared.FixedClock{T: now}
	repo := NewRepository(store)
	svc := NewService(repo, NewSequencer(store, clock, nil), ServiceConfig{Clock: clock})
	ctx := context.Background()

	seed := []Invoice{
		{ID: "a", Status: StatusSent, DueDate: now.AddDate(0, 0, -3), Total: 100},
		{ID: "b", Status: StatusViewed, DueDate: now.AddDate(0, 0, -1), Total: 100},
		{ID: "c", Status: StatusSent, DueDate: now.AddDate(0, 0, 3), Total: 100},
		{ID: "d", Status: StatusDraft, DueDate: now.AddDate(0, 0, -9), Total: 100},
		{ID: "e", Status: StatusPaid, DueDate: now.AddDate(0, 0, -9), Total: 100},
	}
	require.NoError(t, repo.Save(ctx, seed))

	changed, err := svc.SweepOverdue(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, changed)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	byID := map[string]Status{}
	for _, inv := range list {
		byID[inv.ID] = inv.Status
	}
	require.Equal(t, StatusOverdue, byID["a"])
	require.Equal(t, StatusOverdue, byID["b"])
	require.Equal(t, StatusSent, byID["c"])
	require.Equal(t, StatusDraft, byID["d"], "drafts are never swept")
	require.Equal(t, StatusPaid, byID["e"])

	// Second sweep is a no-op.
	changed, err = svc.SweepOverdue(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, changed)
}

func TestMutationsBumpInvalidator(t *testing.T) {
	inval := &countingInvalidator{}
	svc := newTestInvoiceService(t, time.Now(), ServiceConfig{Invalidator: inval})
	ctx := context.Background()

	inv, err := svc.Create(ctx, CreateInput{
		ClientName: "Acme",
		Items:      []LineItem{{Description: "Work", Quantity: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, inval.bumps)

	_, err = svc.UpdateStatus(ctx, inv.ID, StatusSent)
	require.NoError(t, err)
	require.Equal(t, 2, inval.bumps)

	require.NoError(t, svc.Delete(ctx, inv.ID))
	require.Equal(t, 3, inval.bumps)
}

func TestCreateWithPaymentLink(t *testing.T) {
	svc := newTestInvoiceService(t, time.Now(), ServiceConfig{})
	inv, err := svc.Create(context.Background(), CreateInput{
		ClientName:      "Acme",
		Items:           []LineItem{{Description: "Work", Quantity: 1, UnitPrice: 100}},
		WithPaymentLink: true,
	})
	require.NoError(t, err)
	require.Equal(t, paymentLinkBase+inv.ID, inv.PaymentLink)
}
