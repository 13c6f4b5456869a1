package common

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the service layer. Handlers translate these into
// HTTP status codes and the standard error envelope.
var (
	// ErrInvalidCredentials covers both "no such user" and "wrong
	// password" so a login failure never reveals which one happened.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDeactivated is returned for logins against an existing
	// but deactivated account, before any password comparison.
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrEmailTaken signals a duplicate email at registration or
	// profile update. Uniqueness is global, not scoped to active users.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrNoteNotFound covers both a genuinely missing note and a note
	// owned by a different user; the two are indistinguishable.
	ErrNoteNotFound = errors.New("note not found")

	ErrUserNotFound = errors.New("user not found")

	// ErrSamePassword is returned when a password change supplies a new
	// password identical to the current one, verified against the
	// stored hash.
	ErrSamePassword = errors.New("new password must be different from the current password")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects per-field input problems. It is always
// recoverable and maps to HTTP 400 with the field list attached.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field problem and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field problem was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// AsValidationError unwraps err into a *ValidationError if possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
