package clients

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge/internal/platform/httpx"
	"github.com/billforge/billforge/internal/platform/kv"
	"github.com/billforge/billforge/internal/shared"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo := NewRepository(kv.NewMemory())
	return NewService(repo, shared.FixedClock{T: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)})
}

func TestCreateThenListRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Acme Corp", Email: "billing@acme.test", Address: "1 Main St"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, *created, list[0])
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(context.Background(), Input{Name: "   "})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDeleteRemovesExactlyOneAndKeepsOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"First", "Second", "Third"} {
		c, err := svc.Create(ctx, Input{Name: name})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	require.NoError(t, svc.Delete(ctx, ids[1]))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "First", list[0].Name)
	require.Equal(t, "Third", list[1].Name)

	err = svc.Delete(ctx, "nope")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateIsPartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Acme", Email: "old@acme.test", Phone: "555"})
	require.NoError(t, err)

	email := "new@acme.test"
	updated, err := svc.Update(ctx, created.ID, Update{Email: &email})
	require.NoError(t, err)
	require.Equal(t, "Acme", updated.Name)
	require.Equal(t, "new@acme.test", updated.Email)
	require.Equal(t, "555", updated.Phone)
}

func TestFindOrCreateReusesMatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.FindOrCreate(ctx, Input{Name: "Acme", Email: "a@acme.test"})
	require.NoError(t, err)
	second, err := svc.FindOrCreate(ctx, Input{Name: "Acme", Email: "a@acme.test"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	third, err := svc.FindOrCreate(ctx, Input{Name: "Acme", Email: "other@acme.test"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, third.ID)
}

func TestCorruptClientListSurfaces(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kv.KeyClients, "[broken"))

	svc := NewService(NewRepository(store), nil)
	_, err := svc.List(ctx)
	if !errors.Is(err, kv.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
}
