package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge/internal/invoices"
)

type stubSource struct {
	list  []invoices.Invoice
	calls int
}

func (s *stubSource) List(ctx context.Context) ([]invoices.Invoice, error) {
	s.calls++
	return s.list, nil
}

func newTestCache(t *testing.T) (*Cache, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), client
}

func TestServiceCachesSummary(t *testing.T) {
	cache, _ := newTestCache(t)
	source := &stubSource{list: []invoices.Invoice{
		mkInvoice("Acme", 100, "USD", invoices.StatusSent, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)),
	}}
	svc := NewService(source, cache)
	ctx := context.Background()

	first, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	second, err := svc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls, "second read should come from cache")
}

func TestServiceBumpInvalidates(t *testing.T) {
	cache, _ := newTestCache(t)
	source := &stubSource{list: []invoices.Invoice{
		mkInvoice("Acme", 100, "USD", invoices.StatusSent, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)),
	}}
	svc := NewService(source, cache)
	ctx := context.Background()

	_, err := svc.GetSummary(ctx)
	require.NoError(t, err)

	source.list = append(source.list, mkInvoice("Globex", 50, "USD", invoices.StatusSent, time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, cache.Bump(ctx))

	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls)
	assert.InDelta(t, 150, summary.TotalInvoiced, 0.001)
}

func TestServiceWithoutCache(t *testing.T) {
	source := &stubSource{}
	svc := NewService(source, nil)

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.InvoiceCount)
	assert.Equal(t, 1, source.calls)
}
