package agreement

import (
	"context"
	"time"

	"chiroportaal/internal/domain"
	agreementrepo "chiroportaal/internal/repository/agreement"
)

// Service owns the sponsorship agreement use cases.
type Service struct {
	repo agreementrepo.Repository
}

func New(repo agreementrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in domain.CreateAgreementInput) (*domain.SponsorshipAgreement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, sponsorID, workYearID int64) (*domain.SponsorshipAgreement, error) {
	return s.repo.Get(ctx, sponsorID, workYearID)
}

func (s *Service) ListByWorkYear(ctx context.Context, workYearID int64) ([]domain.SponsorshipAgreement, error) {
	return s.repo.ListByWorkYear(ctx, workYearID)
}

func (s *Service) ListBySponsor(ctx context.Context, sponsorID int64) ([]domain.SponsorshipAgreement, error) {
	return s.repo.ListBySponsor(ctx, sponsorID)
}

func (s *Service) Update(ctx context.Context, sponsorID, workYearID int64, in domain.UpdateAgreementInput) (*domain.SponsorshipAgreement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, sponsorID, workYearID, in)
}

// MarkPaid records the agreed amount as received. Paying twice is an
// AlreadyPaid conflict.
func (s *Service) MarkPaid(ctx context.Context, sponsorID, workYearID int64, in domain.MarkPaidInput) (*domain.SponsorshipAgreement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	a, err := s.repo.Get(ctx, sponsorID, workYearID)
	if err != nil {
		return nil, err
	}
	at := time.Now().UTC()
	if in.Date != nil {
		at = *in.Date
	}
	if err := a.Payment.MarkReceived("sponsorship agreement", in.Method, at); err != nil {
		return nil, err
	}
	return s.repo.SetPayment(ctx, sponsorID, workYearID, a.Payment)
}

func (s *Service) Delete(ctx context.Context, sponsorID, workYearID int64) error {
	return s.repo.Delete(ctx, sponsorID, workYearID)
}
