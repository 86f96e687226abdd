package membership

import (
	"context"
	"errors"
	"time"

	"chiroportaal/internal/domain"
	membershiprepo "chiroportaal/internal/repository/membership"
)

// ErrNotEligible rejects an enrollment into a group whose age band or gender
// restriction the member does not fit at the work-year start.
var ErrNotEligible = errors.New("member is not eligible for this group")

// Service owns the enrollment use cases: joining a group for a work-year,
// moving groups and recording the membership fee payment.
type Service struct {
	repo      membershiprepo.Repository
	members   memberRepo
	groups    groupRepo
	workYears workYearRepo
}

type memberRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
}

type groupRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
}

type workYearRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkYear, error)
}

func New(repo membershiprepo.Repository, members memberRepo, groups groupRepo, workYears workYearRepo) *Service {
	return &Service{repo: repo, members: members, groups: groups, workYears: workYears}
}

// Enroll signs a member up for a group in a work-year after checking the
// group accepts the member's birth date and gender at the year's start.
func (s *Service) Enroll(ctx context.Context, in domain.CreateMembershipInput) (*domain.YearlyMembership, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	m, err := s.members.GetByID(ctx, in.MemberID)
	if err != nil {
		return nil, err
	}
	wy, err := s.workYears.GetByID(ctx, in.WorkYearID)
	if err != nil {
		return nil, err
	}
	g, err := s.groups.GetByID(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}
	if !g.AcceptsBirthDateAndGender(m.DateOfBirth, m.Gender, wy.StartDate) {
		return nil, ErrNotEligible
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, memberID, workYearID int64) (*domain.YearlyMembership, error) {
	return s.repo.Get(ctx, memberID, workYearID)
}

func (s *Service) ListByWorkYear(ctx context.Context, workYearID int64) ([]domain.YearlyMembership, error) {
	return s.repo.ListByWorkYear(ctx, workYearID)
}

func (s *Service) ListByMember(ctx context.Context, memberID int64) ([]domain.YearlyMembership, error) {
	return s.repo.ListByMember(ctx, memberID)
}

// MoveGroup re-runs the eligibility check against the target group before
// moving the membership.
func (s *Service) MoveGroup(ctx context.Context, memberID, workYearID int64, in domain.UpdateMembershipInput) (*domain.YearlyMembership, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.GroupID != nil {
		m, err := s.members.GetByID(ctx, memberID)
		if err != nil {
			return nil, err
		}
		wy, err := s.workYears.GetByID(ctx, workYearID)
		if err != nil {
			return nil, err
		}
		g, err := s.groups.GetByID(ctx, *in.GroupID)
		if err != nil {
			return nil, err
		}
		if !g.AcceptsBirthDateAndGender(m.DateOfBirth, m.Gender, wy.StartDate) {
			return nil, ErrNotEligible
		}
	}
	return s.repo.Update(ctx, memberID, workYearID, in)
}

// MarkPaid records the fee payment. Paying an already paid membership is an
// AlreadyPaid conflict, not a no-op.
func (s *Service) MarkPaid(ctx context.Context, memberID, workYearID int64, in domain.MarkPaidInput) (*domain.YearlyMembership, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	m, err := s.repo.Get(ctx, memberID, workYearID)
	if err != nil {
		return nil, err
	}
	at := time.Now().UTC()
	if in.Date != nil {
		at = *in.Date
	}
	if err := m.Payment.MarkReceived("yearly membership", in.Method, at); err != nil {
		return nil, err
	}
	return s.repo.SetPayment(ctx, memberID, workYearID, m.Payment)
}

func (s *Service) Delete(ctx context.Context, memberID, workYearID int64) error {
	return s.repo.Delete(ctx, memberID, workYearID)
}
