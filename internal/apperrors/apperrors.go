package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")

	ErrForbidden         = errors.New("actor is not allowed to perform this operation")
	ErrInvalidTransition = errors.New("status transition not permitted from current state")
	ErrConflict          = errors.New("operation conflicts with current state")
	ErrNotEligible       = errors.New("no delivered pickup request between beneficiary and donor")
)

// PublicationNotAvailableError is returned when a pickup is requested against a
// publication that is already reserved or completed. It matches ErrConflict via
// errors.Is so transport can map it with the generic conflicts.
type PublicationNotAvailableError struct {
	PublicationID string
	Status        string
}

func (e *PublicationNotAvailableError) Error() string {
	return fmt.Sprintf("publication '%s' is not available (status '%s')", e.PublicationID, e.Status)
}
func (e *PublicationNotAvailableError) Is(target error) bool { return target == ErrConflict }

type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from '%s' to '%s'", e.Entity, e.From, e.To)
}
func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

type EmailTakenError struct{ Email string }

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("a user with email '%s' already exists", e.Email)
}
func (e *EmailTakenError) Is(target error) bool { return target == ErrConflict }
