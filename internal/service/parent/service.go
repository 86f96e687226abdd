package parent

import (
	"context"

	"chiroportaal/internal/domain"
	parentrepo "chiroportaal/internal/repository/parent"
)

// Service owns the parent use cases. A parent's address is usually entered as
// street fields rather than an id, so CreateWithAddress folds the address
// get-or-create into the registration.
type Service struct {
	repo      parentrepo.Repository
	addresses addressService
}

type addressService interface {
	GetOrCreate(ctx context.Context, in domain.CreateAddressInput) (*domain.Address, error)
}

func New(repo parentrepo.Repository, addresses addressService) *Service {
	return &Service{repo: repo, addresses: addresses}
}

func (s *Service) Create(ctx context.Context, in domain.CreateParentInput) (*domain.Parent, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

// CreateWithAddress registers a parent together with their address, reusing
// an already stored address with the same natural key.
func (s *Service) CreateWithAddress(ctx context.Context, in domain.CreateParentInput, addr domain.CreateAddressInput) (*domain.Parent, error) {
	stored, err := s.addresses.GetOrCreate(ctx, addr)
	if err != nil {
		return nil, err
	}
	in.AddressID = stored.ID
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Parent, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.Parent, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context) ([]domain.Parent, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, in domain.UpdateParentInput) (*domain.Parent, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
