package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Gender is the registered gender of a member or the restriction on a group.
type Gender string

const (
	GenderM Gender = "M"
	GenderF Gender = "F"
	// GenderX covers non-binary and unspecified; members with X are eligible
	// for single-gender groups.
	GenderX Gender = "X"
)

// Member is a registered child or leader of the chapter.
type Member struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      Gender    `json:"gender"`
	PhoneNumber *string   `json:"phoneNumber,omitempty"`
	Email       *string   `json:"email,omitempty"`

	// Owned 1:1 records, created and updated together with the member.
	EmergencyContact *EmergencyContact   `json:"emergencyContact,omitempty"`
	MedicalInfo      *MedicalInformation `json:"medicalInformation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// EmergencyContact is the person to call when a parent is unreachable.
type EmergencyContact struct {
	Name         string `json:"name"`
	PhoneNumber  string `json:"phoneNumber"`
	Relationship string `json:"relationship"`
}

func (c EmergencyContact) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&c.PhoneNumber, validation.Required, validation.Length(6, 20)),
		validation.Field(&c.Relationship, validation.Required, validation.Length(1, 50)),
	)
}

// MedicalInformation is the medical sheet a leader consults on camp.
type MedicalInformation struct {
	DoctorName         string  `json:"doctorName"`
	DoctorPhoneNumber  string  `json:"doctorPhoneNumber"`
	Allergies          *string `json:"allergies,omitempty"`
	Medications        *string `json:"medications,omitempty"`
	Conditions         *string `json:"conditions,omitempty"`
	TetanusVaccinated  bool    `json:"tetanusVaccinated"`
	CanSwim            bool    `json:"canSwim"`
	Notes              *string `json:"notes,omitempty"`
}

func (m MedicalInformation) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.DoctorName, validation.Required, validation.Length(1, 100)),
		validation.Field(&m.DoctorPhoneNumber, validation.Required, validation.Length(6, 20)),
		validation.Field(&m.Allergies, validation.Length(0, 1000)),
		validation.Field(&m.Medications, validation.Length(0, 1000)),
		validation.Field(&m.Conditions, validation.Length(0, 1000)),
		validation.Field(&m.Notes, validation.Length(0, 2000)),
	)
}

// CreateMemberInput is the validated shape for registering a member. The
// owned records are optional and persisted in the same transaction.
type CreateMemberInput struct {
	FirstName        string              `json:"firstName"`
	LastName         string              `json:"lastName"`
	DateOfBirth      time.Time           `json:"dateOfBirth"`
	Gender           Gender              `json:"gender"`
	PhoneNumber      *string             `json:"phoneNumber"`
	Email            *string             `json:"email"`
	EmergencyContact *EmergencyContact   `json:"emergencyContact"`
	MedicalInfo      *MedicalInformation `json:"medicalInformation"`
}

func (in CreateMemberInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.DateOfBirth, validation.Required),
		validation.Field(&in.Gender, validation.Required, validation.In(GenderM, GenderF, GenderX)),
		validation.Field(&in.PhoneNumber, validation.Length(6, 20)),
		validation.Field(&in.Email, is.Email),
		validation.Field(&in.EmergencyContact),
		validation.Field(&in.MedicalInfo),
	)
}

// UpdateMemberInput is the creation shape made fully optional. Setting
// EmergencyContact or MedicalInfo replaces the owned record wholesale;
// PhoneNumber or Email set to the empty string clears the field.
type UpdateMemberInput struct {
	FirstName        *string             `json:"firstName"`
	LastName         *string             `json:"lastName"`
	DateOfBirth      *time.Time          `json:"dateOfBirth"`
	Gender           *Gender             `json:"gender"`
	PhoneNumber      *string             `json:"phoneNumber"`
	Email            *string             `json:"email"`
	EmergencyContact *EmergencyContact   `json:"emergencyContact"`
	MedicalInfo      *MedicalInformation `json:"medicalInformation"`
}

func (in UpdateMemberInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Length(1, 50)),
		validation.Field(&in.LastName, validation.Length(1, 50)),
		validation.Field(&in.Gender, validation.In(GenderM, GenderF, GenderX)),
		validation.Field(&in.PhoneNumber, validation.Length(6, 20)),
		validation.Field(&in.EmergencyContact),
		validation.Field(&in.MedicalInfo),
	)
}
