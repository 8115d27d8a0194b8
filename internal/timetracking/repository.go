package timetracking

import (
	"context"

	"github.com/billforge/billforge/internal/platform/kv"
)

// Repository persists time entries as a single ordered JSON document.
type Repository struct {
	store kv.Store
}

// NewRepository builds a Repository over the given store.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// List loads all time entries. An absent key yields an empty list.
func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	var list []Entry
	if err := kv.LoadJSON(ctx, r.store, kv.KeyTimeEntries, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Save overwrites the full entry list.
func (r *Repository) Save(ctx context.Context, list []Entry) error {
	return kv.SaveJSON(ctx, r.store, kv.KeyTimeEntries, list)
}
