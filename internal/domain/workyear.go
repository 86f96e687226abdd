package domain

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ErrInvalidPeriod rejects a work-year whose end does not fall after its
// start. Surfaces from updates, where only the merged record can be checked.
var ErrInvalidPeriod = errors.New("work year end date must be after its start date")

// WorkYear is the chapter's annual operating period (September through
// August). The (start, end) pair is the natural key and acts as the time
// dimension for memberships and sponsorship agreements.
type WorkYear struct {
	ID        int64     `json:"id"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	FeeCents  int64     `json:"feeCents"`
}

// CreateWorkYearInput is the validated shape for opening a new work-year.
type CreateWorkYearInput struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	FeeCents  int64     `json:"feeCents"`
}

func (in CreateWorkYearInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.StartDate, validation.Required),
		validation.Field(&in.EndDate, validation.Required, validation.By(func(interface{}) error {
			if !in.EndDate.After(in.StartDate) {
				return errors.New("must be after the start date")
			}
			return nil
		})),
		validation.Field(&in.FeeCents, validation.Min(0)),
	)
}

// UpdateWorkYearInput makes the creation fields optional. The period check
// against the merged record happens in the repository, which is the only
// place that sees both halves.
type UpdateWorkYearInput struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	FeeCents  *int64     `json:"feeCents"`
}

func (in UpdateWorkYearInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FeeCents, validation.Min(0)),
	)
}
