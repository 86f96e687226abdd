package sponsor

import (
	"context"

	"chiroportaal/internal/domain"
	sponsorrepo "chiroportaal/internal/repository/sponsor"
)

// Service owns the sponsor use cases. ListActive feeds the public sponsor
// wall on the website.
type Service struct {
	repo sponsorrepo.Repository
}

func New(repo sponsorrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in domain.CreateSponsorInput) (*domain.Sponsor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Sponsor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Sponsor, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Sponsor, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, in domain.UpdateSponsorInput) (*domain.Sponsor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
