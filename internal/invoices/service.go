package invoices

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/currency"

	"github.com/billforge/billforge/internal/clients"
	"github.com/billforge/billforge/internal/observability"
	"github.com/billforge/billforge/internal/platform/httpx"
	"github.com/billforge/billforge/internal/shared"
)

// paymentLinkBase is the placeholder checkout host; real payment
// processing is out of scope.
const paymentLinkBase = "https://pay.billforge.test/inv/"

// RepositoryPort defines data access for the invoice history.
type RepositoryPort interface {
	List(ctx context.Context) ([]Invoice, error)
	Save(ctx context.Context, list []Invoice) error
}

// NumberSource issues invoice numbers.
type NumberSource interface {
	Next(ctx context.Context) (string, error)
}

// ClientSaver lets invoice creation register the billed client.
type ClientSaver interface {
	FindOrCreate(ctx context.Context, input clients.Input) (*clients.Client, error)
}

// CacheInvalidator is notified after every invoice mutation so derived
// aggregates can be recomputed.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

// Service handles invoice business logic.
type Service struct {
	repo        RepositoryPort
	numbers     NumberSource
	clientSaver ClientSaver
	invalidator CacheInvalidator
	clock       shared.Clock
	metrics     *observability.Metrics
	cap         int
}

// ServiceConfig carries optional service dependencies.
type ServiceConfig struct {
	ClientSaver ClientSaver
	Invalidator CacheInvalidator
	Clock       shared.Clock
	Metrics     *observability.Metrics
	// Cap bounds the stored history; zero means the default of 100.
	Cap int
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, numbers NumberSource, cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = shared.SystemClock{}
	}
	limit := cfg.Cap
	if limit <= 0 {
		limit = 100
	}
	return &Service{
		repo:        repo,
		numbers:     numbers,
		clientSaver: cfg.ClientSaver,
		invalidator: cfg.Invalidator,
		clock:       clock,
		metrics:     cfg.Metrics,
		cap:         limit,
	}
}

// CreateInput carries the fields for invoice creation. Totals are always
// recomputed from Items and TaxRate, never accepted from the caller.
type CreateInput struct {
	ClientID     string
	ClientName   string
	ClientEmail  string
	Items        []LineItem
	TaxRate      float64
	Currency     string
	Terms        PaymentTerms
	RenderedHTML string
	// SaveClient registers the billed client in the roster.
	SaveClient bool
	// WithPaymentLink attaches the placeholder checkout link.
	WithPaymentLink bool
}

// Create issues a number, computes totals and due date, and persists the
// invoice. The history is capped; the oldest record is evicted silently.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Invoice, error) {
	if strings.TrimSpace(input.ClientName) == "" {
		return nil, fmt.Errorf("%w: client name required", httpx.ErrValidation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one line item required", httpx.ErrValidation)
	}
	for _, item := range input.Items {
		if item.Quantity < 0 || item.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: negative quantity or unit price", httpx.ErrValidation)
		}
	}
	code := strings.ToUpper(strings.TrimSpace(input.Currency))
	if code == "" {
		code = "USD"
	}
	if _, err := currency.ParseISO(code); err != nil {
		return nil, fmt.Errorf("%w: unknown currency %q", httpx.ErrValidation, input.Currency)
	}

	clientID := input.ClientID
	if input.SaveClient && s.clientSaver != nil {
		client, err := s.clientSaver.FindOrCreate(ctx, clients.Input{
			Name:  input.ClientName,
			Email: input.ClientEmail,
		})
		if err != nil {
			return nil, err
		}
		clientID = client.ID
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	subtotal, tax, total := ComputeTotals(input.Items, input.TaxRate)
	inv := Invoice{
		ID:           shared.NewID(),
		Number:       number,
		ClientID:     clientID,
		ClientName:   strings.TrimSpace(input.ClientName),
		ClientEmail:  strings.TrimSpace(input.ClientEmail),
		Items:        input.Items,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        total,
		Currency:     code,
		Status:       StatusDraft,
		CreatedAt:    now,
		DueDate:      DueDateFromTerms(input.Terms, now),
		RenderedHTML: input.RenderedHTML,
	}
	if input.WithPaymentLink {
		inv.PaymentLink = paymentLinkBase + inv.ID
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list = append(list, inv)
	if over := len(list) - s.cap; over > 0 {
		list = list[over:]
	}
	if err := s.repo.Save(ctx, list); err != nil {
		return nil, err
	}
	s.metrics.InvoiceIssued()
	s.bump(ctx)
	return &inv, nil
}

// List returns the stored invoice history, oldest first.
func (s *Service) List(ctx context.Context) ([]Invoice, error) {
	return s.repo.List(ctx)
}

// Get returns a single invoice by id.
func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: invoice %s", httpx.ErrNotFound, id)
}

// UpdateStatus applies an explicit lifecycle transition. Moving to paid
// stamps the payment timestamp used by analytics.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status) (*Invoice, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if !CanTransition(list[i].Status, to) {
			return nil, fmt.Errorf("%w: cannot move invoice from %s to %s",
				httpx.ErrValidation, list[i].Status, to)
		}
		list[i].Status = to
		if to == StatusPaid {
			now := s.clock.Now()
			list[i].PaidAt = &now
		}
		if err := s.repo.Save(ctx, list); err != nil {
			return nil, err
		}
		s.bump(ctx)
		return &list[i], nil
	}
	return nil, fmt.Errorf("%w: invoice %s", httpx.ErrNotFound, id)
}

// Delete removes one invoice from the history.
func (s *Service) Delete(ctx context.Context, id string) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, inv := range list {
		if inv.ID == id {
			found = true
			continue
		}
		kept = append(kept, inv)
	}
	if !found {
		return fmt.Errorf("%w: invoice %s", httpx.ErrNotFound, id)
	}
	if err := s.repo.Save(ctx, kept); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// SweepOverdue marks every sent or viewed invoice past its due date as
// overdue and reports how many changed.
func (s *Service) SweepOverdue(ctx context.Context) (int, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	now := s.clock.Now()
	changed := 0
	for i := range list {
		if list[i].Status != StatusSent && list[i].Status != StatusViewed {
			continue
		}
		if _, days := CalculateLateFee(list[i].Total, list[i].DueDate, 0, now); days > 0 {
			list[i].Status = StatusOverdue
			changed++
		}
	}
	if changed > 0 {
		if err := s.repo.Save(ctx, list); err != nil {
			return 0, err
		}
		s.bump(ctx)
	}
	s.metrics.SweepRun()
	return changed, nil
}

// LateFee reports the late fee currently owed on an invoice.
func (s *Service) LateFee(ctx context.Context, id string, feePercent float64) (float64, int, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	if inv.Status == StatusPaid {
		return 0, 0, nil
	}
	fee, days := CalculateLateFee(inv.Total, inv.DueDate, feePercent, s.clock.Now())
	return fee, days, nil
}

func (s *Service) bump(ctx context.Context) {
	if s.invalidator != nil {
		_ = s.invalidator.Bump(ctx)
	}
}
