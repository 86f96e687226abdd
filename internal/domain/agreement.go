package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// SponsorshipAgreement is a sponsor's commitment for one work-year. The
// (sponsor, work-year) pair is the identity.
type SponsorshipAgreement struct {
	SponsorID   int64     `json:"sponsorId"`
	WorkYearID  int64     `json:"workYearId"`
	AmountCents int64     `json:"amountCents"`
	Payment     Payment   `json:"payment"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateAgreementInput is the validated shape for recording an agreement.
type CreateAgreementInput struct {
	SponsorID   int64 `json:"sponsorId"`
	WorkYearID  int64 `json:"workYearId"`
	AmountCents int64 `json:"amountCents"`
}

func (in CreateAgreementInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.SponsorID, validation.Required, validation.Min(1)),
		validation.Field(&in.WorkYearID, validation.Required, validation.Min(1)),
		validation.Field(&in.AmountCents, validation.Required, validation.Min(1)),
	)
}

// UpdateAgreementInput allows correcting the amount. The composite key is
// immutable after creation.
type UpdateAgreementInput struct {
	AmountCents *int64 `json:"amountCents"`
}

func (in UpdateAgreementInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.AmountCents, validation.Min(1)),
	)
}
