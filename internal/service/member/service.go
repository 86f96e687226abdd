package member

import (
	"context"

	"chiroportaal/internal/domain"
	memberrepo "chiroportaal/internal/repository/member"
)

// Service owns the member use cases, including the parent links.
type Service struct {
	repo       memberrepo.Repository
	parentRepo parentRepo
}

type parentRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Parent, error)
}

func New(repo memberrepo.Repository, parents parentRepo) *Service {
	return &Service{repo: repo, parentRepo: parents}
}

func (s *Service) Create(ctx context.Context, in domain.CreateMemberInput) (*domain.Member, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Member, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, in domain.UpdateMemberInput) (*domain.Member, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// LinkParent ties an existing parent to the member. The parent lookup runs
// first so the caller gets a clean not-found instead of a constraint error.
func (s *Service) LinkParent(ctx context.Context, memberID, parentID int64, isPrimary bool) error {
	if _, err := s.parentRepo.GetByID(ctx, parentID); err != nil {
		return err
	}
	return s.repo.LinkParent(ctx, memberID, parentID, isPrimary)
}

func (s *Service) UnlinkParent(ctx context.Context, memberID, parentID int64) error {
	return s.repo.UnlinkParent(ctx, memberID, parentID)
}

func (s *Service) ListParentLinks(ctx context.Context, memberID int64) ([]domain.MemberParentLink, error) {
	return s.repo.ListParentLinks(ctx, memberID)
}
