package invoices

import (
	"context"

	"github.com/billforge/billforge/internal/platform/kv"
)

// Repository persists the invoice history as a single ordered JSON
// document, newest record last.
type Repository struct {
	store kv.Store
}

// NewRepository builds a Repository over the given store.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// List loads the full invoice history. An absent key yields an empty list.
func (r *Repository) List(ctx context.Context) ([]Invoice, error) {
	var list []Invoice
	if err := kv.LoadJSON(ctx, r.store, kv.KeyInvoices, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Save overwrites the full invoice history.
func (r *Repository) Save(ctx context.Context, list []Invoice) error {
	return kv.SaveJSON(ctx, r.store, kv.KeyInvoices, list)
}
