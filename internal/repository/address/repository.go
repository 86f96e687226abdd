package address

import (
	"context"

	"chiroportaal/internal/domain"
)

// Repository is the persistence boundary for addresses. Implementations must
// return domain.AlreadyExists on a natural-key collision, domain.NotFound for
// missing records and domain.StillReferenced when parents or sponsors still
// point at the address being deleted.
type Repository interface {
	Create(ctx context.Context, in domain.CreateAddressInput) (*domain.Address, error)
	GetByID(ctx context.Context, id int64) (*domain.Address, error)
	GetByNaturalKey(ctx context.Context, in domain.CreateAddressInput) (*domain.Address, error)
	List(ctx context.Context) ([]domain.Address, error)
	Update(ctx context.Context, id int64, in domain.UpdateAddressInput) (*domain.Address, error)
	Delete(ctx context.Context, id int64) error
	// DeleteAll wipes the table. Test and reset tooling only.
	DeleteAll(ctx context.Context) error
}
