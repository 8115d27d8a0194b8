package analytics

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/billforge/billforge/internal/invoices"
)

// InvoiceSource provides the invoice history to aggregate.
type InvoiceSource interface {
	List(ctx context.Context) ([]invoices.Invoice, error)
}

// Service coordinates summary computation with the cache layer.
// Concurrent requests for the same key are collapsed into one
// computation via singleflight.
type Service struct {
	source InvoiceSource
	cache  *Cache
	group  singleflight.Group
}

// NewService wires an InvoiceSource with a Cache helper.
func NewService(source InvoiceSource, cache *Cache) *Service {
	return &Service{source: source, cache: cache}
}

// GetSummary resolves the dashboard summary using cache-aware lookups.
func (s *Service) GetSummary(ctx context.Context) (Summary, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		list, err := s.source.List(ctx)
		if err != nil {
			return Summary{}, err
		}
		return Summarize(list), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Summary{}, err
		}
		return value.(Summary), nil
	}

	key, err := s.cache.BuildKey(ctx, keySummary())
	if err != nil {
		return Summary{}, err
	}
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		var summary Summary
		if err := s.cache.FetchJSON(ctx, key, &summary, loader); err != nil {
			return Summary{}, err
		}
		return summary, nil
	})
	if err != nil {
		return Summary{}, err
	}
	return result.(Summary), nil
}

// Invalidator exposes the cache helper so invoice mutations can bump it.
func (s *Service) Invalidator() *Cache {
	return s.cache
}
