package walk

import (
	"errors"
	"fmt"
)

// ErrNoBookings is returned when a pack walk is requested with an empty
// booking list. Nothing is created.
var ErrNoBookings = errors.New("pack walk requires at least one booking")

// EligibilityError reports why a booking cannot join a pack walk.
type EligibilityError struct {
	BookingID string
	Reason    string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("booking %s not eligible for pack walk: %s", e.BookingID, e.Reason)
}

// GeoErrorKind classifies device geolocation failures.
type GeoErrorKind string

const (
	GeoPermissionDenied GeoErrorKind = "permission_denied"
	GeoTimeout          GeoErrorKind = "timeout"
	GeoUnavailable      GeoErrorKind = "unavailable"
)

// GeoError is a failed position sample. The tracker logs and drops these;
// the next tick proceeds regardless.
type GeoError struct {
	Kind GeoErrorKind
	Err  error
}

func (e *GeoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation %s: %v", e.Kind, e.Err)
	}
	return "geolocation " + string(e.Kind)
}

func (e *GeoError) Unwrap() error { return e.Err }
