package group

import (
	"context"
	"time"

	"chiroportaal/internal/domain"
	grouprepo "chiroportaal/internal/repository/group"
)

// Service owns the group use cases, including the public eligibility lookup
// parents use while registering a child.
type Service struct {
	repo grouprepo.Repository
}

func New(repo grouprepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in domain.CreateGroupInput) (*domain.Group, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Group, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Group, error) {
	return s.repo.List(ctx)
}

// ActiveForBirthDateAndGender returns the active groups a member born on
// birthDate with the given gender fits at the reference date.
func (s *Service) ActiveForBirthDateAndGender(ctx context.Context, birthDate time.Time, gender domain.Gender, at time.Time) ([]domain.Group, error) {
	groups, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Group
	for _, g := range groups {
		if g.Active && g.AcceptsBirthDateAndGender(birthDate, gender, at) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, in domain.UpdateGroupInput) (*domain.Group, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
