package booking

import (
	"context"
	"fmt"
	"time"

	"pawroute/models"

	"github.com/google/uuid"
)

// CreateBooking validates the request, verifies the dog belongs to the
// authenticated client, freezes the fee breakdown from the walker's
// hourly rate and persists the booking as pending. Fees are never
// recomputed after this point.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, clientID string, input models.BookingInput) (*models.Booking, error) {
	if input.WalkerID == "" || input.DogID == "" {
		return nil, newValidationError("walkerId and dogId are required")
	}
	if input.DurationMin <= 0 {
		return nil, newValidationError("duration must be positive")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, newValidationError("date must be in YYYY-MM-DD format")
	}
	if input.StartMinute < 0 || input.StartMinute >= 24*60 {
		return nil, newValidationError("start time must fall within the day")
	}

	dog, err := s.DogRepo.GetByID(ctx, input.DogID)
	if err != nil {
		return nil, newValidationError("dog %s not found", input.DogID)
	}
	// Ownership is enforced here only; it is not re-verified on later
	// transitions.
	if dog.OwnerID != clientID {
		return nil, newValidationError("dog %s does not belong to you", input.DogID)
	}

	walker, err := s.WalkerRepo.GetByID(ctx, input.WalkerID)
	if err != nil {
		return nil, newValidationError("walker %s not found", input.WalkerID)
	}
	if walker.Suspended {
		return nil, newValidationError("walker %s is not accepting bookings", input.WalkerID)
	}

	total := ComputeTotalFee(walker.HourlyRate, input.DurationMin)
	platform, payout := SplitFee(total, s.PlatformFeeRate)

	booking := &models.Booking{
		ID:           uuid.New().String(),
		ClientID:     clientID,
		WalkerID:     input.WalkerID,
		DogID:        input.DogID,
		Date:         input.Date,
		StartMinute:  input.StartMinute,
		DurationMin:  input.DurationMin,
		Status:       models.BookingPending,
		TotalFee:     total,
		PlatformFee:  platform,
		WalkerPayout: payout,
	}

	if err := s.Repo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}
