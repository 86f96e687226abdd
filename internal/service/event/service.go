package event

import (
	"context"
	"errors"
	"time"

	"chiroportaal/internal/domain"
	eventrepo "chiroportaal/internal/repository/event"
)

// ErrNotEligible rejects a registration for a group-restricted event when the
// member is not enrolled in any of the event's groups.
var ErrNotEligible = errors.New("member is not in a group this event is open to")

// Service owns the calendar use cases: events, the public upcoming listing
// and member registrations.
type Service struct {
	repo        eventrepo.Repository
	memberships membershipRepo
}

type membershipRepo interface {
	ListByMember(ctx context.Context, memberID int64) ([]domain.YearlyMembership, error)
}

func New(repo eventrepo.Repository, memberships membershipRepo) *Service {
	return &Service{repo: repo, memberships: memberships}
}

func (s *Service) Create(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx)
}

// ListUpcoming returns events that have not ended yet at the reference date.
func (s *Service) ListUpcoming(ctx context.Context, at time.Time) ([]domain.Event, error) {
	return s.repo.ListUpcoming(ctx, at)
}

func (s *Service) Update(ctx context.Context, id int64, in domain.UpdateEventInput) (*domain.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Register signs a member up. For a group-restricted event the member must
// hold a yearly membership in one of the event's groups.
func (s *Service) Register(ctx context.Context, in domain.CreateRegistrationInput) (*domain.EventRegistration, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	e, err := s.repo.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if len(e.GroupIDs) > 0 {
		memberships, err := s.memberships.ListByMember(ctx, in.MemberID)
		if err != nil {
			return nil, err
		}
		if !enrolledInAny(memberships, e.GroupIDs) {
			return nil, ErrNotEligible
		}
	}
	return s.repo.Register(ctx, in)
}

func enrolledInAny(memberships []domain.YearlyMembership, groupIDs []int64) bool {
	for _, m := range memberships {
		for _, gid := range groupIDs {
			if m.GroupID == gid {
				return true
			}
		}
	}
	return false
}

func (s *Service) GetRegistration(ctx context.Context, eventID, memberID int64) (*domain.EventRegistration, error) {
	return s.repo.GetRegistration(ctx, eventID, memberID)
}

func (s *Service) ListRegistrations(ctx context.Context, eventID int64) ([]domain.EventRegistration, error) {
	return s.repo.ListRegistrations(ctx, eventID)
}

// MarkRegistrationPaid records the event fee payment. Paying twice is an
// AlreadyPaid conflict.
func (s *Service) MarkRegistrationPaid(ctx context.Context, eventID, memberID int64, in domain.MarkPaidInput) (*domain.EventRegistration, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	reg, err := s.repo.GetRegistration(ctx, eventID, memberID)
	if err != nil {
		return nil, err
	}
	at := time.Now().UTC()
	if in.Date != nil {
		at = *in.Date
	}
	if err := reg.Payment.MarkReceived("event registration", in.Method, at); err != nil {
		return nil, err
	}
	return s.repo.SetRegistrationPayment(ctx, eventID, memberID, reg.Payment)
}

func (s *Service) Unregister(ctx context.Context, eventID, memberID int64) error {
	return s.repo.Unregister(ctx, eventID, memberID)
}
