// Package entitlement gates Pro-tier features behind a stored flag.
// Core calculators never import this package; gating stays at the edge.
package entitlement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/billforge/billforge/internal/platform/httpx"
	"github.com/billforge/billforge/internal/platform/kv"
	"github.com/billforge/billforge/internal/shared"
)

// Checker reports whether the account holds a Pro entitlement.
type Checker interface {
	IsEntitled(ctx context.Context) (bool, error)
}

// WaitlistEntry is one signup for the Pro waitlist.
type WaitlistEntry struct {
	Email    string    `json:"email"`
	SignedUp time.Time `json:"date"`
}

// Status describes the current entitlement state.
type Status struct {
	Pro         bool       `json:"pro"`
	ActivatedAt *time.Time `json:"activatedAt,omitempty"`
}

// Service is the KV-backed entitlement implementation.
type Service struct {
	store kv.Store
	clock shared.Clock
}

// NewService builds a Service.
func NewService(store kv.Store, clock shared.Clock) *Service {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &Service{store: store, clock: clock}
}

// IsEntitled implements Checker.
func (s *Service) IsEntitled(ctx context.Context) (bool, error) {
	status, err := s.Status(ctx)
	if err != nil {
		return false, err
	}
	return status.Pro, nil
}

// Status reads the flag and activation timestamp together.
func (s *Service) Status(ctx context.Context) (Status, error) {
	raw, err := s.store.Get(ctx, kv.KeyProFlag)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return Status{}, err
	}
	status := Status{Pro: raw == "true"}
	if !status.Pro {
		return status, nil
	}

	stamp, err := s.store.Get(ctx, kv.KeyProActivatedAt)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return status, nil
		}
		return Status{}, err
	}
	at, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return Status{}, fmt.Errorf("%w: pro activation timestamp: %v", kv.ErrCorruptState, err)
	}
	status.ActivatedAt = &at
	return status, nil
}

// Activate turns the Pro flag on and stamps the activation time.
func (s *Service) Activate(ctx context.Context) (Status, error) {
	now := s.clock.Now().UTC()
	if err := s.store.Set(ctx, kv.KeyProFlag, "true"); err != nil {
		return Status{}, err
	}
	if err := s.store.Set(ctx, kv.KeyProActivatedAt, now.Format(time.RFC3339)); err != nil {
		return Status{}, err
	}
	return Status{Pro: true, ActivatedAt: &now}, nil
}

// Deactivate clears the Pro flag. The activation timestamp is removed
// alongside it so a later Activate starts fresh.
func (s *Service) Deactivate(ctx context.Context) error {
	if err := s.store.Set(ctx, kv.KeyProFlag, "false"); err != nil {
		return err
	}
	return s.store.Delete(ctx, kv.KeyProActivatedAt)
}

// JoinWaitlist records a signup, deduplicated by email (case-insensitive).
func (s *Service) JoinWaitlist(ctx context.Context, email string) (WaitlistEntry, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return WaitlistEntry{}, fmt.Errorf("%w: valid email required", httpx.ErrValidation)
	}

	var list []WaitlistEntry
	if err := kv.LoadJSON(ctx, s.store, kv.KeyWaitlist, &list); err != nil {
		return WaitlistEntry{}, err
	}
	for _, entry := range list {
		if strings.EqualFold(entry.Email, email) {
			return entry, nil
		}
	}

	entry := WaitlistEntry{Email: email, SignedUp: s.clock.Now().UTC()}
	list = append(list, entry)
	if err := kv.SaveJSON(ctx, s.store, kv.KeyWaitlist, list); err != nil {
		return WaitlistEntry{}, err
	}
	return entry, nil
}

// Waitlist returns every recorded signup.
func (s *Service) Waitlist(ctx context.Context) ([]WaitlistEntry, error) {
	var list []WaitlistEntry
	if err := kv.LoadJSON(ctx, s.store, kv.KeyWaitlist, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []WaitlistEntry{}
	}
	return list, nil
}
