package workyear

import (
	"context"
	"time"

	"chiroportaal/internal/domain"
	workyearrepo "chiroportaal/internal/repository/workyear"
)

// Service owns the work-year use cases.
type Service struct {
	repo workyearrepo.Repository
}

func New(repo workyearrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in domain.CreateWorkYearInput) (*domain.WorkYear, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.WorkYear, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.WorkYear, error) {
	return s.repo.List(ctx)
}

// Current returns the work-year whose period covers the reference date.
func (s *Service) Current(ctx context.Context, at time.Time) (*domain.WorkYear, error) {
	years, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, wy := range years {
		if !at.Before(wy.StartDate) && !at.After(wy.EndDate) {
			current := wy
			return &current, nil
		}
	}
	return nil, domain.NotFound("work year")
}

func (s *Service) Update(ctx context.Context, id int64, in domain.UpdateWorkYearInput) (*domain.WorkYear, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
