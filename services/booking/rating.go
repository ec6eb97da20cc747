package booking

import (
	"context"

	"pawroute/models"
	"pawroute/utils"

	"go.uber.org/zap"
)

// RateBooking records the client's 1-5 star rating on a completed walk.
// Rating does not change booking status. A later write silently replaces
// the earlier one; no audit trail is kept, but the walker's aggregate is
// adjusted rather than double-counted.
func (s *DefaultBookingService) RateBooking(ctx context.Context, clientID, bookingID string, stars int) (*models.Booking, error) {
	if stars < 1 || stars > 5 {
		return nil, newValidationError("rating must be between 1 and 5")
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ClientID != clientID {
		return nil, ErrNotYourBooking
	}
	if b.Status != models.BookingCompleted || b.WalkerID == "" {
		return nil, ErrNotRatable
	}

	previous := b.Rating
	if err := s.Repo.SetRating(ctx, b.ID, stars); err != nil {
		return nil, err
	}
	b.Rating = stars

	if err := s.WalkerRepo.ApplyRating(ctx, b.WalkerID, previous, stars); err != nil {
		utils.GetLogger().Warn("failed to update walker rating aggregate",
			zap.String("walkerID", b.WalkerID), zap.Error(err))
	}
	return b, nil
}

// Receipt returns the frozen fee breakdown and walk report for a booking.
// Both parties to the booking may view it.
func (s *DefaultBookingService) Receipt(ctx context.Context, actorID, bookingID string) (*models.Receipt, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ClientID != actorID && b.WalkerID != actorID {
		return nil, ErrNotYourBooking
	}

	return &models.Receipt{
		BookingID:    b.ID,
		Date:         b.Date,
		DurationMin:  b.DurationMin,
		TotalFee:     b.TotalFee,
		PlatformFee:  b.PlatformFee,
		WalkerPayout: b.WalkerPayout,
		WalkNotes:    b.WalkNotes,
		Peed:         b.Peed,
		Pooped:       b.Pooped,
		Rating:       b.Rating,
	}, nil
}

// GetBooking fetches a booking either party may view.
func (s *DefaultBookingService) GetBooking(ctx context.Context, actorID, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ClientID != actorID && b.WalkerID != actorID {
		return nil, ErrNotYourBooking
	}
	return b, nil
}

// ListClientBookings returns a client's bookings, newest first.
func (s *DefaultBookingService) ListClientBookings(ctx context.Context, clientID string) ([]models.Booking, error) {
	return s.Repo.ListByClient(ctx, clientID)
}

// ListWalkerBookings returns a walker's bookings, newest first.
func (s *DefaultBookingService) ListWalkerBookings(ctx context.Context, walkerID string) ([]models.Booking, error) {
	return s.Repo.ListByWalker(ctx, walkerID)
}
