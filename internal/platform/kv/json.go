package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// SaveJSON serializes v and writes it under key. Failures wrap
// ErrPersistenceFailed so callers can warn instead of silently losing data.
func SaveJSON(ctx context.Context, store Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPersistenceFailed, key, err)
	}
	return store.Set(ctx, key, string(raw))
}

// LoadJSON reads key and decodes it into dest. An absent key leaves dest
// untouched and returns nil: empty collections are the safe default.
// A value that fails to decode wraps ErrCorruptState; the caller decides
// whether to discard the record set or abort.
func LoadJSON(ctx context.Context, store Store, key string, dest any) error {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrCorruptState, key, err)
	}
	return nil
}
