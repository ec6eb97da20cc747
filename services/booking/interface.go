package booking

import (
	"context"
	"time"

	bookingRepo "pawroute/database/repository/booking"
	dogRepo "pawroute/database/repository/dog"
	walkerRepo "pawroute/database/repository/walker"
	"pawroute/models"
	"pawroute/services/notification"
	"pawroute/services/walk"
)

// StartWalkResult tells the caller what starting a walk did. A solo walk
// starts a tracker on the booking's own id; a session-linked booking
// hands control to the shared session instead, so no second breadcrumb
// stream is ever produced for it.
type StartWalkResult struct {
	Booking        *models.Booking `json:"booking"`
	SessionID      string          `json:"sessionId"`
	TrackerStarted bool            `json:"trackerStarted"`
}

// BookingService drives the booking lifecycle. Every operation takes the
// acting party's id and enforces both ownership and the legal status
// transitions; illegal moves fail before any store write.
type BookingService interface {
	CreateBooking(ctx context.Context, clientID string, input models.BookingInput) (*models.Booking, error)
	AcceptBooking(ctx context.Context, walkerID, bookingID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, actorID, bookingID string) (*models.Booking, error)
	StartWalk(ctx context.Context, walkerID, bookingID string) (*StartWalkResult, error)
	CompleteWalk(ctx context.Context, walkerID, bookingID, notes string, peed, pooped bool) (*models.Booking, error)
	RateBooking(ctx context.Context, clientID, bookingID string, stars int) (*models.Booking, error)
	Receipt(ctx context.Context, actorID, bookingID string) (*models.Receipt, error)
	GetBooking(ctx context.Context, actorID, bookingID string) (*models.Booking, error)
	ListClientBookings(ctx context.Context, clientID string) ([]models.Booking, error)
	ListWalkerBookings(ctx context.Context, walkerID string) ([]models.Booking, error)
}

// ReminderScheduler enqueues a walk reminder for future delivery.
// Satisfied by cron.ReminderScheduler.
type ReminderScheduler interface {
	Schedule(payload models.ReminderPayload, at time.Time) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo       bookingRepo.BookingRepository
	DogRepo    dogRepo.DogRepository
	WalkerRepo walkerRepo.WalkerRepository

	Sessions *walk.SessionManager
	Trackers *walk.TrackerPool

	// Optional collaborators; nil disables the concern.
	Notifier  notification.NotificationService
	Reminders ReminderScheduler

	// PlatformFeeRate is the platform's cut as a fraction (0.15 = 15%).
	PlatformFeeRate float64

	// ReminderLead is how long before the walk the reminder fires.
	ReminderLead time.Duration
}
