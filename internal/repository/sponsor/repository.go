package sponsor

import (
	"context"

	"chiroportaal/internal/domain"
)

// Repository is the persistence boundary for sponsors. Company names are
// unique case-insensitively; the optional address reference must exist; a
// sponsor may not be deleted while agreements are recorded against it.
type Repository interface {
	Create(ctx context.Context, in domain.CreateSponsorInput) (*domain.Sponsor, error)
	GetByID(ctx context.Context, id int64) (*domain.Sponsor, error)
	GetByCompanyName(ctx context.Context, name string) (*domain.Sponsor, error)
	List(ctx context.Context) ([]domain.Sponsor, error)
	ListActive(ctx context.Context) ([]domain.Sponsor, error)
	Update(ctx context.Context, id int64, in domain.UpdateSponsorInput) (*domain.Sponsor, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
