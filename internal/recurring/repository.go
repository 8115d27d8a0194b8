package recurring

import (
	"context"

	"github.com/billforge/billforge/internal/platform/kv"
)

// Repository persists recurring templates as a single ordered JSON document.
type Repository struct {
	store kv.Store
}

// NewRepository builds a Repository over the given store.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// List loads all templates. An absent key yields an empty list.
func (r *Repository) List(ctx context.Context) ([]Template, error) {
	var list []Template
	if err := kv.LoadJSON(ctx, r.store, kv.KeyRecurring, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Save overwrites the full template list.
func (r *Repository) Save(ctx context.Context, list []Template) error {
	return kv.SaveJSON(ctx, r.store, kv.KeyRecurring, list)
}
