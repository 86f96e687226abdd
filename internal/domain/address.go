package domain

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Address is a Belgian street address. Parents and sponsors point at it by id
// (weak reference), so an address may never be deleted while referenced.
type Address struct {
	ID           int64     `json:"id"`
	Street       string    `json:"street"`
	HouseNumber  string    `json:"houseNumber"`
	Box          *string   `json:"box,omitempty"`
	Municipality string    `json:"municipality"`
	PostalCode   int       `json:"postalCode"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NaturalKey returns the uniqueness key of the address: all location fields
// combined. Two addresses with the same key describe the same front door.
func (a Address) NaturalKey() string {
	box := ""
	if a.Box != nil {
		box = *a.Box
	}
	return fmt.Sprintf("%s\x1f%s\x1f%s\x1f%s\x1f%d", a.Street, a.HouseNumber, box, a.Municipality, a.PostalCode)
}

// CreateAddressInput is the validated shape for creating an address.
type CreateAddressInput struct {
	Street       string  `json:"street"`
	HouseNumber  string  `json:"houseNumber"`
	Box          *string `json:"box"`
	Municipality string  `json:"municipality"`
	PostalCode   int     `json:"postalCode"`
}

// Validate checks field bounds. A Belgian postal code is a 4-digit number.
func (in CreateAddressInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Street, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.HouseNumber, validation.Required, validation.Length(1, 10)),
		validation.Field(&in.Box, validation.Length(1, 10)),
		validation.Field(&in.Municipality, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.PostalCode, validation.Required, validation.Min(1000), validation.Max(9999)),
	)
}

// UpdateAddressInput is the creation shape made fully optional. A nil field
// leaves the stored value unchanged; Box set to an empty string clears it.
type UpdateAddressInput struct {
	Street       *string `json:"street"`
	HouseNumber  *string `json:"houseNumber"`
	Box          *string `json:"box"`
	Municipality *string `json:"municipality"`
	PostalCode   *int    `json:"postalCode"`
}

// Validate applies the same per-field bounds as creation to the fields that
// are present.
func (in UpdateAddressInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Street, validation.Length(1, 100)),
		validation.Field(&in.HouseNumber, validation.Length(1, 10)),
		validation.Field(&in.Municipality, validation.Length(1, 100)),
		validation.Field(&in.PostalCode, validation.Min(1000), validation.Max(9999)),
	)
}
