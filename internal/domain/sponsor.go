package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Sponsor is a company supporting the chapter. The company name is unique
// case-insensitively; the address reference is optional and weak.
type Sponsor struct {
	ID          int64     `json:"id"`
	CompanyName string    `json:"companyName"`
	AddressID   *int64    `json:"addressId,omitempty"`
	LogoURL     *string   `json:"logoUrl,omitempty"`
	WebsiteURL  *string   `json:"websiteUrl,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateSponsorInput is the validated shape for adding a sponsor.
type CreateSponsorInput struct {
	CompanyName string  `json:"companyName"`
	AddressID   *int64  `json:"addressId"`
	LogoURL     *string `json:"logoUrl"`
	WebsiteURL  *string `json:"websiteUrl"`
	Active      bool    `json:"active"`
}

func (in CreateSponsorInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CompanyName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.AddressID, validation.Min(1)),
		validation.Field(&in.LogoURL, is.URL),
		validation.Field(&in.WebsiteURL, is.URL),
	)
}

// UpdateSponsorInput makes the creation fields optional. AddressID set to
// zero detaches the address; LogoURL or WebsiteURL set to the empty string
// clears the field.
type UpdateSponsorInput struct {
	CompanyName *string `json:"companyName"`
	AddressID   *int64  `json:"addressId"`
	LogoURL     *string `json:"logoUrl"`
	WebsiteURL  *string `json:"websiteUrl"`
	Active      *bool   `json:"active"`
}

func (in UpdateSponsorInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CompanyName, validation.Length(1, 100)),
		validation.Field(&in.LogoURL, is.URL),
		validation.Field(&in.WebsiteURL, is.URL),
	)
}
