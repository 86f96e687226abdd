package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// YearlyMembership enrolls a member in a group for one work-year. The
// (member, work-year) pair is the identity: a member joins at most one group
// per year.
type YearlyMembership struct {
	MemberID   int64     `json:"memberId"`
	WorkYearID int64     `json:"workYearId"`
	GroupID    int64     `json:"groupId"`
	Payment    Payment   `json:"payment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateMembershipInput is the validated shape for enrolling a member. Both
// halves of the composite key and the group must already exist.
type CreateMembershipInput struct {
	MemberID   int64 `json:"memberId"`
	WorkYearID int64 `json:"workYearId"`
	GroupID    int64 `json:"groupId"`
}

func (in CreateMembershipInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.MemberID, validation.Required, validation.Min(1)),
		validation.Field(&in.WorkYearID, validation.Required, validation.Min(1)),
		validation.Field(&in.GroupID, validation.Required, validation.Min(1)),
	)
}

// UpdateMembershipInput allows moving the membership to another group. The
// composite key is immutable after creation.
type UpdateMembershipInput struct {
	GroupID *int64 `json:"groupId"`
}

func (in UpdateMembershipInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.GroupID, validation.Min(1)),
	)
}

// MarkPaidInput records the discrete payment event.
type MarkPaidInput struct {
	Method PaymentMethod `json:"method"`
	Date   *time.Time    `json:"date"`
}

func (in MarkPaidInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Method, validation.Required, validation.In(PaymentMethods()...)),
	)
}
