package parent

import (
	"context"

	"chiroportaal/internal/domain"
)

// Repository is the persistence boundary for parents. Email addresses are
// unique case-insensitively; the address reference must exist at create and
// update time; a parent may not be deleted while linked to a member.
type Repository interface {
	Create(ctx context.Context, in domain.CreateParentInput) (*domain.Parent, error)
	GetByID(ctx context.Context, id int64) (*domain.Parent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Parent, error)
	List(ctx context.Context) ([]domain.Parent, error)
	Update(ctx context.Context, id int64, in domain.UpdateParentInput) (*domain.Parent, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
