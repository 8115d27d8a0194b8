package entitlement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge/internal/platform/kv"
	"github.com/billforge/billforge/internal/shared"
)

func newTestService() *Service {
	clock := shared.FixedClock{T: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	return NewService(kv.NewMemory(), clock)
}

func TestEntitlementDefaultsOff(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ok, err := svc.IsEntitled(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Pro)
	assert.Nil(t, status.ActivatedAt)
}

func TestActivateDeactivate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	status, err := svc.Activate(ctx)
	require.NoError(t, err)
	assert.True(t, status.Pro)
	require.NotNil(t, status.ActivatedAt)
	assert.Equal(t, time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC), *status.ActivatedAt)

	ok, err := svc.IsEntitled(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Deactivate(ctx))
	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Pro)
	assert.Nil(t, status.ActivatedAt)
}

func TestWaitlistDedupesByEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.JoinWaitlist(ctx, "Alex@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", first.Email)

	again, err := svc.JoinWaitlist(ctx, "alex@example.com ")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	_, err = svc.JoinWaitlist(ctx, "sam@example.com")
	require.NoError(t, err)

	list, err := svc.Waitlist(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestWaitlistRejectsBadEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.JoinWaitlist(context.Background(), "not-an-email")
	require.Error(t, err)
}
