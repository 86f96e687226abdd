package event

import (
	"context"
	"time"

	"chiroportaal/internal/domain"
)

// Repository is the persistence boundary for events and their registrations.
// Group links are owned by the event and validated against the groups table;
// an event cannot be deleted while registrations exist for it.
type Repository interface {
	Create(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListUpcoming(ctx context.Context, after time.Time) ([]domain.Event, error)
	Update(ctx context.Context, id int64, in domain.UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error

	Register(ctx context.Context, in domain.CreateRegistrationInput) (*domain.EventRegistration, error)
	GetRegistration(ctx context.Context, eventID, memberID int64) (*domain.EventRegistration, error)
	ListRegistrations(ctx context.Context, eventID int64) ([]domain.EventRegistration, error)
	SetRegistrationPayment(ctx context.Context, eventID, memberID int64, p domain.Payment) (*domain.EventRegistration, error)
	Unregister(ctx context.Context, eventID, memberID int64) error
}
