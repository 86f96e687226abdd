package address

import (
	"context"

	"chiroportaal/internal/domain"
	addressrepo "chiroportaal/internal/repository/address"
)

// Service owns the address use cases. Addresses are deduplicated on their
// natural key, so callers that only have the street fields go through
// GetOrCreate.
type Service struct {
	repo addressrepo.Repository
}

func New(repo addressrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in domain.CreateAddressInput) (*domain.Address, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

// GetOrCreate returns the existing address with the same natural key, or
// creates it when none is stored yet.
func (s *Service) GetOrCreate(ctx context.Context, in domain.CreateAddressInput) (*domain.Address, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByNaturalKey(ctx, in)
	if err == nil {
		return existing, nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Address, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Address, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, in domain.UpdateAddressInput) (*domain.Address, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
