package domain

import (
	"errors"
	"fmt"
)

// Failure categories. Every concrete error below wraps exactly one of them so
// callers can branch on the category with errors.Is.
var (
	ErrValidation   = errors.New("validation failure")
	ErrAuth         = errors.New("authentication failure")
	ErrCollaborator = errors.New("collaborator failure")
)

// Validation failures.
var (
	ErrEmptyTitle       = fmt.Errorf("%w: title must not be blank", ErrValidation)
	ErrEmptyContent     = fmt.Errorf("%w: content must not be blank", ErrValidation)
	ErrEmptyProfile     = fmt.Errorf("%w: first name, last name and email are required", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, MaxPasswordBytes)
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrInvalidPasscode  = fmt.Errorf("%w: invalid passcode", ErrValidation)
)

// Auth failures.
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrAuth)
	ErrNoSession          = fmt.Errorf("%w: no active session", ErrAuth)
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrAlreadyMember   = errors.New("already a member")
	ErrForbidden       = errors.New("access forbidden")
)

// Collaborator wraps a storage or identity-provider failure so it matches
// ErrCollaborator while keeping the underlying cause inspectable.
func Collaborator(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrCollaborator, err)
}
