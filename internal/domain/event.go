package domain

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Event is a calendar entry: a weekly activity, a fundraiser, a camp. Events
// can be restricted to specific groups through owned link rows.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	PriceCents  int64     `json:"priceCents"`
	// GroupIDs lists the groups the event is aimed at; empty means the whole
	// chapter. The links are owned by the event, not independent entities.
	GroupIDs  []int64   `json:"groupIds"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventRegistration signs a member up for an event. The (event, member) pair
// is the identity.
type EventRegistration struct {
	EventID   int64     `json:"eventId"`
	MemberID  int64     `json:"memberId"`
	Payment   Payment   `json:"payment"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateEventInput is the validated shape for putting an event on the
// calendar.
type CreateEventInput struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	PriceCents  int64     `json:"priceCents"`
	GroupIDs    []int64   `json:"groupIds"`
}

func (in CreateEventInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Description, validation.Length(0, 2000)),
		validation.Field(&in.Location, validation.Length(0, 200)),
		validation.Field(&in.StartsAt, validation.Required),
		validation.Field(&in.EndsAt, validation.Required, validation.By(func(interface{}) error {
			if in.EndsAt.Before(in.StartsAt) {
				return errors.New("must not be before the start")
			}
			return nil
		})),
		validation.Field(&in.PriceCents, validation.Min(0)),
	)
}

// UpdateEventInput makes the creation fields optional. GroupIDs set to an
// empty (non-nil) slice clears the restriction.
type UpdateEventInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	PriceCents  *int64     `json:"priceCents"`
	GroupIDs    []int64    `json:"groupIds"`
}

func (in UpdateEventInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Length(1, 100)),
		validation.Field(&in.PriceCents, validation.Min(0)),
	)
}

// CreateRegistrationInput is the validated shape for signing a member up.
type CreateRegistrationInput struct {
	EventID  int64 `json:"eventId"`
	MemberID int64 `json:"memberId"`
}

func (in CreateRegistrationInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.EventID, validation.Required, validation.Min(1)),
		validation.Field(&in.MemberID, validation.Required, validation.Min(1)),
	)
}
