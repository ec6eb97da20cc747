package booking

import (
	"errors"
	"fmt"

	"pawroute/models"
)

// ValidationError is a client-input failure caught before any store call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TransitionError reports an illegal booking lifecycle move.
type TransitionError struct {
	BookingID string
	From      models.BookingStatus
	To        models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("booking %s cannot move from %s to %s", e.BookingID, e.From, e.To)
}

// ErrNotYourBooking is returned when an actor operates on a booking that
// does not belong to them.
var ErrNotYourBooking = errors.New("booking belongs to a different actor")

// ErrNotRatable is returned when a rating is submitted for a booking that
// is not completed.
var ErrNotRatable = errors.New("only completed walks can be rated")
