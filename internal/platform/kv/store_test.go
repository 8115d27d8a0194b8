package kv

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fixture struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := SaveJSON(ctx, store, KeyClients, []fixture{{Name: "Acme", Total: 12.5}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	var out []fixture
	if err := LoadJSON(ctx, store, KeyClients, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Acme" || out[0].Total != 12.5 {
		t.Fatalf("unexpected round trip result %#v", out)
	}
}

func TestLoadJSONAbsentKeyLeavesDefault(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	out := []fixture{}
	if err := LoadJSON(ctx, store, KeyInvoices, &out); err != nil {
		t.Fatalf("expected nil error for absent key, got %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected untouched destination, got %#v", out)
	}
}

func TestLoadJSONCorruptState(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	if err := store.Set(ctx, KeyInvoices, "{not json"); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out []fixture
	err := LoadJSON(ctx, store, KeyInvoices, &out)
	if !errors.Is(err, ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisFromClient(client)

	ctx := context.Background()
	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Set(ctx, KeyProFlag, "true"); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, err := store.Get(ctx, KeyProFlag)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != "true" {
		t.Fatalf("expected stored value back, got %q", val)
	}
	if err := store.Delete(ctx, KeyProFlag); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, KeyProFlag); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
