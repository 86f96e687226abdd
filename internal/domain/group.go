package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Group is an age band within the chapter (ribbels, speelclub, ...). Age
// bounds are expressed in days so a birth date can be matched exactly against
// the work-year start without month arithmetic.
type Group struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	MinimumAgeDays int     `json:"minimumAgeDays"`
	MaximumAgeDays *int    `json:"maximumAgeDays,omitempty"`
	Gender         *Gender `json:"gender,omitempty"`
	Active         bool    `json:"active"`
}

// AcceptsBirthDateAndGender reports whether a member born on birthDate with
// the given gender fits this group's age band and gender restriction at the
// reference date. Both age bounds are inclusive; a group without a gender
// restriction is open to all, and a member with gender X is eligible for
// single-gender groups as well.
func (g Group) AcceptsBirthDateAndGender(birthDate time.Time, gender Gender, at time.Time) bool {
	days := ageInDays(birthDate, at)
	if days < g.MinimumAgeDays {
		return false
	}
	if g.MaximumAgeDays != nil && days > *g.MaximumAgeDays {
		return false
	}
	if g.Gender == nil || gender == GenderX {
		return true
	}
	return *g.Gender == gender
}

func ageInDays(birthDate, at time.Time) int {
	birth := time.Date(birthDate.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	ref := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return int(ref.Sub(birth) / (24 * time.Hour))
}

// CreateGroupInput is the validated shape for creating a group.
type CreateGroupInput struct {
	Name           string  `json:"name"`
	MinimumAgeDays int     `json:"minimumAgeDays"`
	MaximumAgeDays *int    `json:"maximumAgeDays"`
	Gender         *Gender `json:"gender"`
	Active         bool    `json:"active"`
}

func (in CreateGroupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.MinimumAgeDays, validation.Min(0)),
		validation.Field(&in.MaximumAgeDays, validation.Min(0)),
		validation.Field(&in.Gender, validation.In(GenderM, GenderF, GenderX)),
	)
}

// UpdateGroupInput makes every creation field optional. MaximumAgeDays set to
// a negative value clears the upper bound; Gender set to the empty string
// clears the restriction.
type UpdateGroupInput struct {
	Name           *string `json:"name"`
	MinimumAgeDays *int    `json:"minimumAgeDays"`
	MaximumAgeDays *int    `json:"maximumAgeDays"`
	Gender         *Gender `json:"gender"`
	Active         *bool   `json:"active"`
}

func (in UpdateGroupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Length(1, 50)),
		validation.Field(&in.MinimumAgeDays, validation.Min(0)),
		validation.Field(&in.Gender, validation.In(GenderM, GenderF, GenderX, Gender(""))),
	)
}
