package clients

import (
	"context"
	"fmt"
	"strings"

	"github.com/billforge/billforge/internal/platform/httpx"
	"github.com/billforge/billforge/internal/shared"
)

// RepositoryPort defines data access for the client list.
type RepositoryPort interface {
	List(ctx context.Context) ([]Client, error)
	Save(ctx context.Context, list []Client) error
}

// Service handles client business logic.
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

// List returns all clients in insertion order.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

// Get returns a single client by id.
func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: client %s", httpx.ErrNotFound, id)
}

// Create appends a new client and returns it with assigned id and timestamp.
func (s *Service) Create(ctx context.Context, input Input) (*Client, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: client name required", httpx.ErrValidation)
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	client := Client{
		ID:        shared.NewID(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Address:   input.Address,
		Phone:     input.Phone,
		CreatedAt: s.clock.Now(),
	}
	list = append(list, client)
	if err := s.repo.Save(ctx, list); err != nil {
		return nil, err
	}
	return &client, nil
}

// FindOrCreate returns an existing client with the same name and email, or
// creates one. Invoice creation uses this when asked to save the client.
func (s *Service) FindOrCreate(ctx context.Context, input Input) (*Client, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	for i := range list {
		if list[i].Name == name && list[i].Email == email {
			return &list[i], nil
		}
	}
	return s.Create(ctx, input)
}

// Update applies a partial mutation to one client.
func (s *Service) Update(ctx context.Context, id string, update Update) (*Client, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if update.Name != nil {
			if strings.TrimSpace(*update.Name) == "" {
				return nil, fmt.Errorf("%w: client name required", httpx.ErrValidation)
			}
			list[i].Name = strings.TrimSpace(*update.Name)
		}
		if update.Email != nil {
			list[i].Email = strings.TrimSpace(*update.Email)
		}
		if update.Address != nil {
			list[i].Address = *update.Address
		}
		if update.Phone != nil {
			list[i].Phone = *update.Phone
		}
		if err := s.repo.Save(ctx, list); err != nil {
			return nil, err
		}
		return &list[i], nil
	}
	return nil, fmt.Errorf("%w: client %s", httpx.ErrNotFound, id)
}

// Delete removes exactly one client, preserving the order of the rest.
func (s *Service) Delete(ctx context.Context, id string) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, c := range list {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("%w: client %s", httpx.ErrNotFound, id)
	}
	return s.repo.Save(ctx, kept)
}
