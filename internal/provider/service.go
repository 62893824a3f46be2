package provider

import (
	"context"
	"errors"
	"time"

	"providerhub.org/internal/ids"
)

// Service orchestrates validation and persistence for provider records.
type Service struct {
	repo Repository
	now  func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

func NewService(repo Repository, opts ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, errors.New("provider repository is required")
	}
	svc := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// List returns all provider records in store order.
func (s *Service) List(ctx context.Context) ([]Provider, error) {
	return s.repo.List(ctx)
}

// Get returns the record by id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (Provider, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Provider{}, err
	}
	return *p, nil
}

// Create validates and inserts a new provider, assigning a server-generated
// id. A commit that affects zero rows is reported as ErrNotSaved, distinct
// from a validation failure.
func (s *Service) Create(ctx context.Context, p Provider) (Provider, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return Provider{}, err
	}
	now := s.now().UTC()
	p.ID = ids.New()
	p.CreatedAt = now
	p.UpdatedAt = now

	affected, err := s.repo.Add(ctx, &p)
	if err != nil {
		return Provider{}, err
	}
	if affected == 0 {
		return Provider{}, ErrNotSaved
	}
	return p, nil
}

// Replace fully replaces the record with the given id. The existing row is
// read without being tracked anywhere, so the incoming payload's identity
// cannot conflict with it. Identity and creation time are preserved.
func (s *Service) Replace(ctx context.Context, id string, p Provider) (Provider, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Provider{}, err
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return Provider{}, err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now().UTC()

	affected, err := s.repo.Update(ctx, &p)
	if err != nil {
		return Provider{}, err
	}
	if affected == 0 {
		// Existence was checked against a snapshot; a concurrent delete can
		// still land the update on zero rows.
		return Provider{}, ErrNotSaved
	}
	return p, nil
}

// Delete removes the record by id. Absence is ErrNotFound; a remove that
// affects zero rows after the existence check is ErrNotSaved.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	affected, err := s.repo.Remove(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotSaved
	}
	return nil
}
