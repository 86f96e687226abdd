package agreement

import (
	"context"

	"chiroportaal/internal/domain"
)

// Repository is the persistence boundary for sponsorship agreements. The
// (sponsor, work-year) composite key is unique; both sides must exist before
// an agreement is written.
type Repository interface {
	Create(ctx context.Context, in domain.CreateAgreementInput) (*domain.SponsorshipAgreement, error)
	Get(ctx context.Context, sponsorID, workYearID int64) (*domain.SponsorshipAgreement, error)
	ListByWorkYear(ctx context.Context, workYearID int64) ([]domain.SponsorshipAgreement, error)
	ListBySponsor(ctx context.Context, sponsorID int64) ([]domain.SponsorshipAgreement, error)
	Update(ctx context.Context, sponsorID, workYearID int64, in domain.UpdateAgreementInput) (*domain.SponsorshipAgreement, error)
	SetPayment(ctx context.Context, sponsorID, workYearID int64, p domain.Payment) (*domain.SponsorshipAgreement, error)
	Delete(ctx context.Context, sponsorID, workYearID int64) error
	DeleteAll(ctx context.Context) error
}
