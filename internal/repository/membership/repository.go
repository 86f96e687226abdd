package membership

import (
	"context"

	"chiroportaal/internal/domain"
)

// Repository is the persistence boundary for yearly memberships. The
// (member, work-year) composite key is unique; member, work-year and group
// must all exist before a membership is written.
type Repository interface {
	Create(ctx context.Context, in domain.CreateMembershipInput) (*domain.YearlyMembership, error)
	Get(ctx context.Context, memberID, workYearID int64) (*domain.YearlyMembership, error)
	ListByWorkYear(ctx context.Context, workYearID int64) ([]domain.YearlyMembership, error)
	ListByMember(ctx context.Context, memberID int64) ([]domain.YearlyMembership, error)
	Update(ctx context.Context, memberID, workYearID int64, in domain.UpdateMembershipInput) (*domain.YearlyMembership, error)
	SetPayment(ctx context.Context, memberID, workYearID int64, p domain.Payment) (*domain.YearlyMembership, error)
	Delete(ctx context.Context, memberID, workYearID int64) error
	DeleteAll(ctx context.Context) error
}
