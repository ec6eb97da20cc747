package bookingRepo

import (
	"context"

	"pawroute/models"
)

// BookingRepository is the persistence boundary for bookings. Status
// writes are conditional on the expected current status so a racing
// transition loses cleanly instead of last-write-wins.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// UpdateStatus advances id from->to with a single conditional update.
	// Returns ErrStatusConflict when the booking is no longer in "from".
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error

	// SetCompletion performs the completed transition and records the
	// walker's post-walk fields in the same write.
	SetCompletion(ctx context.Context, id string, from models.BookingStatus, notes string, peed, pooped bool) error

	SetSessionID(ctx context.Context, id, sessionID string) error
	ClearSessionID(ctx context.Context, id string) error
	SetRating(ctx context.Context, id string, rating int) error

	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
	ListByWalker(ctx context.Context, walkerID string) ([]models.Booking, error)

	// ListEligiblePack returns the walker's confirmed bookings for the
	// given calendar date that carry no session linkage yet.
	ListEligiblePack(ctx context.Context, walkerID, date string) ([]models.Booking, error)

	// CountOpenBySession counts linked bookings that are not yet in a
	// terminal state; zero means the session can be closed.
	CountOpenBySession(ctx context.Context, sessionID string) (int64, error)

	GetAll(ctx context.Context) ([]models.Booking, error)
}
