package workyear

import (
	"context"
	"time"

	"chiroportaal/internal/domain"
)

// Repository is the persistence boundary for work-years. The (start, end)
// pair is the natural key; a work-year may not be deleted while yearly
// memberships or sponsorship agreements are recorded against it.
type Repository interface {
	Create(ctx context.Context, in domain.CreateWorkYearInput) (*domain.WorkYear, error)
	GetByID(ctx context.Context, id int64) (*domain.WorkYear, error)
	GetByPeriod(ctx context.Context, start, end time.Time) (*domain.WorkYear, error)
	List(ctx context.Context) ([]domain.WorkYear, error)
	Update(ctx context.Context, id int64, in domain.UpdateWorkYearInput) (*domain.WorkYear, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
