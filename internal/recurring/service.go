package recurring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/billforge/billforge/internal/invoices"
	"github.com/billforge/billforge/internal/platform/httpx"
	"github.com/billforge/billforge/internal/shared"
)

// RepositoryPort defines data access for recurring templates.
type RepositoryPort interface {
	List(ctx context.Context) ([]Template, error)
	Save(ctx context.Context, list []Template) error
}

// InvoiceCreator turns a template into a stored invoice.
type InvoiceCreator interface {
	Create(ctx context.Context, input invoices.CreateInput) (*invoices.Invoice, error)
}

// Service handles recurring-template business logic.
type Service struct {
	repo     RepositoryPort
	invoicer InvoiceCreator
	clock    shared.Clock
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, invoicer InvoiceCreator, clock shared.Clock) *Service {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &Service{repo: repo, invoicer: invoicer, clock: clock}
}

// CreateInput carries the fields for template creation.
type CreateInput struct {
	Name           string
	ClientID       string
	ClientName     string
	ClientEmail    string
	Items          []invoices.LineItem
	Currency       string
	TaxRate        float64
	Frequency      Frequency
	StartDate      time.Time
	EndDate        *time.Time
	PaymentTerms   invoices.PaymentTerms
	LateFeeEnabled bool
	LateFeePercent float64
}

// List returns all templates in insertion order.
func (s *Service) List(ctx context.Context) ([]Template, error) {
	return s.repo.List(ctx)
}

// Get returns a single template by id.
func (s *Service) Get(ctx context.Context, id string) (*Template, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: recurring template %s", httpx.ErrNotFound, id)
}

// Create registers a template. The first due date is the start date.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Template, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: template name required", httpx.ErrValidation)
	}
	if strings.TrimSpace(input.ClientName) == "" {
		return nil, fmt.Errorf("%w: client name required", httpx.ErrValidation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one line item required", httpx.ErrValidation)
	}
	if !input.Frequency.Valid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", httpx.ErrValidation, input.Frequency)
	}
	start := input.StartDate
	if start.IsZero() {
		start = s.clock.Now()
	}
	if input.EndDate != nil && input.EndDate.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", httpx.ErrValidation)
	}

	tpl := Template{
		ID:             shared.NewID(),
		Name:           strings.TrimSpace(input.Name),
		ClientID:       input.ClientID,
		ClientName:     strings.TrimSpace(input.ClientName),
		ClientEmail:    strings.TrimSpace(input.ClientEmail),
		Items:          input.Items,
		Currency:       input.Currency,
		TaxRate:        input.TaxRate,
		Frequency:      input.Frequency,
		StartDate:      start,
		EndDate:        input.EndDate,
		NextDueDate:    start,
		PaymentTerms:   input.PaymentTerms,
		LateFeeEnabled: input.LateFeeEnabled,
		LateFeePercent: input.LateFeePercent,
		IsActive:       true,
		CreatedAt:      s.clock.Now(),
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list = append(list, tpl)
	if err := s.repo.Save(ctx, list); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Generate creates an invoice from one template, advances its next due
// date and increments its generation counter.
func (s *Service) Generate(ctx context.Context, id string) (*invoices.Invoice, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if !list[i].IsActive {
			return nil, fmt.Errorf("%w: template %s is paused", httpx.ErrValidation, id)
		}
		if list[i].EndDate != nil && list[i].NextDueDate.After(*list[i].EndDate) {
			return nil, fmt.Errorf("%w: template %s has ended", httpx.ErrValidation, id)
		}
		inv, err := s.invoicer.Create(ctx, invoices.CreateInput{
			ClientID:    list[i].ClientID,
			ClientName:  list[i].ClientName,
			ClientEmail: list[i].ClientEmail,
			Items:       list[i].Items,
			TaxRate:     list[i].TaxRate,
			Currency:    list[i].Currency,
			Terms:       list[i].PaymentTerms,
		})
		if err != nil {
			return nil, err
		}
		list[i].NextDueDate = NextDate(list[i].Frequency, list[i].NextDueDate, list[i].StartDate.Day())
		list[i].GeneratedCount++
		if err := s.repo.Save(ctx, list); err != nil {
			return nil, err
		}
		return inv, nil
	}
	return nil, fmt.Errorf("%w: recurring template %s", httpx.ErrNotFound, id)
}

// GenerateDue generates invoices for every active template whose next
// due date is on or before now, catching up templates that are several
// periods behind. Used by the scheduled job. Each generation advances
// the template's due date, so the loop always terminates.
func (s *Service) GenerateDue(ctx context.Context) (int, error) {
	now := s.clock.Now()
	generated := 0
	for {
		list, err := s.repo.List(ctx)
		if err != nil {
			return generated, err
		}
		dueID := ""
		for i := range list {
			if !list[i].IsActive || list[i].NextDueDate.After(now) {
				continue
			}
			if list[i].EndDate != nil && list[i].NextDueDate.After(*list[i].EndDate) {
				continue
			}
			dueID = list[i].ID
			break
		}
		if dueID == "" {
			return generated, nil
		}
		if _, err := s.Generate(ctx, dueID); err != nil {
			return generated, err
		}
		generated++
	}
}

// SetActive pauses or resumes a template.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*Template, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		list[i].IsActive = active
		if err := s.repo.Save(ctx, list); err != nil {
			return nil, err
		}
		return &list[i], nil
	}
	return nil, fmt.Errorf("%w: recurring template %s", httpx.ErrNotFound, id)
}

// Delete removes one template.
func (s *Service) Delete(ctx context.Context, id string) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, tpl := range list {
		if tpl.ID == id {
			found = true
			continue
		}
		kept = append(kept, tpl)
	}
	if !found {
		return fmt.Errorf("%w: recurring template %s", httpx.ErrNotFound, id)
	}
	return s.repo.Save(ctx, kept)
}
