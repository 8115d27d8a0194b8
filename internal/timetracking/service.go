package timetracking

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/billforge/billforge/internal/platform/httpx"
	"github.com/billforge/billforge/internal/shared"
)

// RepositoryPort defines data access for time entries.
type RepositoryPort interface {
	List(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, list []Entry) error
}

// Service handles time-tracking business logic.
type Service struct {
	repo  RepositoryPort
	clock shared.Clock
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, clock shared.Clock) *Service {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &Service{repo: repo, clock: clock}
}

// ManualInput carries the fields for a manually created entry.
type ManualInput struct {
	ClientID        string
	ClientName      string
	Project         string
	Task            string
	DurationMinutes int
	HourlyRate      float64
}

// TimerInput carries the fields for starting a timer.
type TimerInput struct {
	ClientID   string
	ClientName string
	Project    string
	Task       string
	HourlyRate float64
}

// List returns all entries in insertion order.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}

// Unbilled returns completed entries not yet pulled into an invoice,
// optionally filtered by client id.
func (s *Service) Unbilled(ctx context.Context, clientID string) ([]Entry, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(list))
	for _, e := range list {
		if e.Running() || e.Billed {
			continue
		}
		if clientID != "" && e.ClientID != clientID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// CreateManual records a completed entry with a caller-supplied duration.
func (s *Service) CreateManual(ctx context.Context, input ManualInput) (*Entry, error) {
	if strings.TrimSpace(input.Task) == "" {
		return nil, fmt.Errorf("%w: task required", httpx.ErrValidation)
	}
	if input.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive minutes", httpx.ErrValidation)
	}
	if input.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate must not be negative", httpx.ErrValidation)
	}
	now := s.clock.Now()
	end := now
	entry := Entry{
		ID:              shared.NewID(),
		ClientID:        input.ClientID,
		ClientName:      input.ClientName,
		Project:         input.Project,
		Task:            strings.TrimSpace(input.Task),
		StartTime:       now.Add(-minutes(input.DurationMinutes)),
		EndTime:         &end,
		DurationMinutes: input.DurationMinutes,
		HourlyRate:      input.HourlyRate,
		CreatedAt:       now,
	}
	return s.append(ctx, entry)
}

// StartTimer opens a running entry. Only one timer may run at a time.
func (s *Service) StartTimer(ctx context.Context, input TimerInput) (*Entry, error) {
	if strings.TrimSpace(input.Task) == "" {
		return nil, fmt.Errorf("%w: task required", httpx.ErrValidation)
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range list {
		if e.Running() {
			return nil, fmt.Errorf("%w: a timer is already running", httpx.ErrDuplicate)
		}
	}
	now := s.clock.Now()
	entry := Entry{
		ID:         shared.NewID(),
		ClientID:   input.ClientID,
		ClientName: input.ClientName,
		Project:    input.Project,
		Task:       strings.TrimSpace(input.Task),
		StartTime:  now,
		HourlyRate: input.HourlyRate,
		CreatedAt:  now,
	}
	return s.append(ctx, entry)
}

// StopTimer closes the running entry, converting the elapsed interval to
// whole minutes (rounded up, minimum one).
func (s *Service) StopTimer(ctx context.Context) (*Entry, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if !list[i].Running() {
			continue
		}
		now := s.clock.Now()
		elapsed := now.Sub(list[i].StartTime).Minutes()
		mins := int(math.Ceil(elapsed))
		if mins < 1 {
			mins = 1
		}
		list[i].EndTime = &now
		list[i].DurationMinutes = mins
		if err := s.repo.Save(ctx, list); err != nil {
			return nil, err
		}
		return &list[i], nil
	}
	return nil, fmt.Errorf("%w: no running timer", httpx.ErrNotFound)
}

// MarkBilled flips the billed flag on the given entries.
func (s *Service) MarkBilled(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	changed := 0
	for i := range list {
		if _, ok := want[list[i].ID]; !ok {
			continue
		}
		if !list[i].Billed && !list[i].Running() {
			list[i].Billed = true
			changed++
		}
	}
	if changed > 0 {
		if err := s.repo.Save(ctx, list); err != nil {
			return 0, err
		}
	}
	return changed, nil
}

// Delete removes one entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, e := range list {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("%w: time entry %s", httpx.ErrNotFound, id)
	}
	return s.repo.Save(ctx, kept)
}

func (s *Service) append(ctx context.Context, entry Entry) (*Entry, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list = append(list, entry)
	if err := s.repo.Save(ctx, list); err != nil {
		return nil, err
	}
	return &entry, nil
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
