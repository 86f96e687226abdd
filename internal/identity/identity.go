package identity

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Role gates what a logged-in user may do. Leiding manage the chapter's data;
// admins additionally manage user accounts.
type Role string

const (
	RoleLeiding Role = "leiding"
	RoleAdmin   Role = "admin"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password,
	// so a login probe cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAuthenticationRequired rejects a request without a valid token.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrAuthorizationDenied rejects an authenticated user without the needed
	// role.
	ErrAuthorizationDenied = errors.New("authorization denied")
)

// User is a portal account for leiding or admins, not a member record.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateUserInput is the validated shape for provisioning an account.
type CreateUserInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

func (in CreateUserInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&in.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.Role, validation.Required, validation.In(RoleLeiding, RoleAdmin)),
	)
}

// UpdateUserInput makes the account fields optional. Password set replaces
// the hash; Active false locks the account out without deleting it.
type UpdateUserInput struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *Role   `json:"role"`
	Active    *bool   `json:"active"`
}

func (in UpdateUserInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, is.Email),
		validation.Field(&in.Password, validation.Length(8, 72)),
		validation.Field(&in.FirstName, validation.Length(1, 50)),
		validation.Field(&in.LastName, validation.Length(1, 50)),
		validation.Field(&in.Role, validation.In(RoleLeiding, RoleAdmin)),
	)
}
