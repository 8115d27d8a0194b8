package clients

import (
	"context"

	"github.com/billforge/billforge/internal/platform/kv"
)

// Repository persists the client list as a single ordered JSON document.
type Repository struct {
	store kv.Store
}

// NewRepository builds a Repository over the given store.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// List loads the full client list. An absent key yields an empty list.
func (r *Repository) List(ctx context.Context) ([]Client, error) {
	var list []Client
	if err := kv.LoadJSON(ctx, r.store, kv.KeyClients, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Save overwrites the full client list.
func (r *Repository) Save(ctx context.Context, list []Client) error {
	return kv.SaveJSON(ctx, r.store, kv.KeyClients, list)
}
