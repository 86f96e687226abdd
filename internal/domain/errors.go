package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a domain failure so callers can branch on the category
// without knowing which entity produced it.
type Kind string

const (
	// KindNotFound indicates the requested entity does not exist.
	KindNotFound Kind = "not_found"
	// KindAlreadyExists indicates a natural-key collision on create or update.
	KindAlreadyExists Kind = "already_exists"
	// KindStillReferenced indicates a delete was blocked by live references.
	KindStillReferenced Kind = "still_referenced"
	// KindAlreadyPaid indicates a payment was already recorded for the record.
	KindAlreadyPaid Kind = "already_paid"
	// KindDatabase wraps persistence failures the application did not anticipate.
	KindDatabase Kind = "database"
)

// Error is the typed failure value returned by repositories and services.
type Error struct {
	Kind   Kind
	Entity string
	// ReferencedBy names the entities still pointing at the target. Only set
	// for KindStillReferenced.
	ReferencedBy []string
	cause        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return e.Entity + " not found"
	case KindAlreadyExists:
		return e.Entity + " already exists"
	case KindStillReferenced:
		if len(e.ReferencedBy) > 0 {
			return fmt.Sprintf("%s is still referenced by %s", e.Entity, strings.Join(e.ReferencedBy, ", "))
		}
		return e.Entity + " is still referenced"
	case KindAlreadyPaid:
		return e.Entity + " is already marked as paid"
	case KindDatabase:
		return fmt.Sprintf("%s: %v", e.Entity, e.cause)
	}
	return string(e.Kind) + ": " + e.Entity
}

func (e *Error) Unwrap() error { return e.cause }

// Is makes two domain errors equal when kind and entity match, so callers can
// compare against a constructed sentinel with errors.Is.
func (e *Error) Is(target error) bool {
	var de *Error
	if !errors.As(target, &de) {
		return false
	}
	return e.Kind == de.Kind && e.Entity == de.Entity
}

// NotFound reports that the named entity does not exist.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity}
}

// AlreadyExists reports a natural-key collision for the named entity.
func AlreadyExists(entity string) *Error {
	return &Error{Kind: KindAlreadyExists, Entity: entity}
}

// StillReferenced reports a blocked delete and names what still refers to it.
func StillReferenced(entity string, referencedBy ...string) *Error {
	return &Error{Kind: KindStillReferenced, Entity: entity, ReferencedBy: referencedBy}
}

// AlreadyPaid reports a second payment marking on the named record.
func AlreadyPaid(entity string) *Error {
	return &Error{Kind: KindAlreadyPaid, Entity: entity}
}

// DatabaseError wraps an unexpected persistence failure. It is never used for
// the expected NotFound/AlreadyExists/StillReferenced outcomes.
func DatabaseError(op string, err error) *Error {
	return &Error{Kind: KindDatabase, Entity: op, cause: err}
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// IsNotFound reports whether err is any entity's not-found error.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsAlreadyExists reports whether err is any entity's natural-key collision.
func IsAlreadyExists(err error) bool { return IsKind(err, KindAlreadyExists) }

// IsStillReferenced reports whether err is a blocked delete.
func IsStillReferenced(err error) bool { return IsKind(err, KindStillReferenced) }

// IsAlreadyPaid reports whether err is a duplicate payment marking.
func IsAlreadyPaid(err error) bool { return IsKind(err, KindAlreadyPaid) }
