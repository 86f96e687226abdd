package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Parent is a parent or guardian. A parent lives at exactly one address
// (weak reference) and can be linked to any number of members.
type Parent struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
	AddressID   int64     `json:"addressId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MemberParentLink ties a member to a parent. IsPrimary marks the parent to
// contact first; a member has at most one primary parent.
type MemberParentLink struct {
	MemberID  int64 `json:"memberId"`
	ParentID  int64 `json:"parentId"`
	IsPrimary bool  `json:"isPrimary"`
}

// CreateParentInput is the validated shape for registering a parent.
type CreateParentInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	AddressID   int64  `json:"addressId"`
}

func (in CreateParentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.PhoneNumber, validation.Required, validation.Length(6, 20)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.AddressID, validation.Required, validation.Min(1)),
	)
}

// UpdateParentInput makes the creation fields optional.
type UpdateParentInput struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
	AddressID   *int64  `json:"addressId"`
}

func (in UpdateParentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Length(1, 50)),
		validation.Field(&in.LastName, validation.Length(1, 50)),
		validation.Field(&in.PhoneNumber, validation.Length(6, 20)),
		validation.Field(&in.Email, is.Email),
		validation.Field(&in.AddressID, validation.Min(1)),
	)
}
