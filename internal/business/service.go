package business

import (
	"context"
	"fmt"
	"strings"

	"github.com/billforge/billforge/internal/platform/httpx"
	"github.com/billforge/billforge/internal/platform/kv"
)

// Service reads and writes the business profile singleton.
type Service struct {
	store kv.Store
}

// NewService builds a Service instance.
func NewService(store kv.Store) *Service {
	return &Service{store: store}
}

// Get returns the stored profile, or nil when none has been saved.
func (s *Service) Get(ctx context.Context) (*Info, error) {
	var info *Info
	if err := kv.LoadJSON(ctx, s.store, kv.KeyBusinessInfo, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// Save overwrites the profile wholesale.
func (s *Service) Save(ctx context.Context, info Info) (*Info, error) {
	if strings.TrimSpace(info.Name) == "" {
		return nil, fmt.Errorf("%w: business name required", httpx.ErrValidation)
	}
	if strings.TrimSpace(info.Email) == "" {
		return nil, fmt.Errorf("%w: business email required", httpx.ErrValidation)
	}
	if info.LateFee < 0 {
		return nil, fmt.Errorf("%w: late fee percent must not be negative", httpx.ErrValidation)
	}
	if info.PaymentTerms == "" {
		info.PaymentTerms = "net_30"
	}
	if err := kv.SaveJSON(ctx, s.store, kv.KeyBusinessInfo, info); err != nil {
		return nil, err
	}
	return &info, nil
}
