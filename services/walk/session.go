package walk

import (
	"context"
	"fmt"
	"time"

	bookingRepo "pawroute/database/repository/booking"
	sessionRepo "pawroute/database/repository/session"
	"pawroute/models"
	"pawroute/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionManager creates shared walk sessions and links bookings to them.
type SessionManager struct {
	Sessions sessionRepo.SessionRepository
	Bookings bookingRepo.BookingRepository

	// Now is the clock used for calendar-day eligibility. Nil means
	// time.Now; tests inject a fixed clock.
	Now func() time.Time
}

func (m *SessionManager) today() string {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return now().Format("2006-01-02")
}

// EligiblePackBookings returns the walker's confirmed bookings for today
// that carry no session linkage yet.
func (m *SessionManager) EligiblePackBookings(ctx context.Context, walkerID string) ([]models.Booking, error) {
	return m.Bookings.ListEligiblePack(ctx, walkerID, m.today())
}

// StartPackWalk creates one shared session for the given bookings and
// links each of them to it. Booking statuses are deliberately untouched:
// they stay confirmed until the walker starts the walk on one of them.
//
// Every booking must be confirmed, unlinked, owned by the walker and
// scheduled for today; otherwise nothing is created. If a link fails
// partway, the bookings already linked are unlinked again and the session
// is closed, so no orphaned-but-live session survives a partial failure.
func (m *SessionManager) StartPackWalk(ctx context.Context, walkerID string, bookingIDs []string) (*models.WalkSession, error) {
	if len(bookingIDs) == 0 {
		return nil, ErrNoBookings
	}

	today := m.today()
	for _, id := range bookingIDs {
		booking, err := m.Bookings.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("pack walk: %w", err)
		}
		if booking.WalkerID != walkerID {
			return nil, &EligibilityError{BookingID: id, Reason: "booked with a different walker"}
		}
		if booking.Status != models.BookingConfirmed {
			return nil, &EligibilityError{BookingID: id, Reason: "not confirmed"}
		}
		if booking.SessionID != "" {
			return nil, &EligibilityError{BookingID: id, Reason: "already linked to a session"}
		}
		if booking.Date != today {
			return nil, &EligibilityError{BookingID: id, Reason: "not scheduled for today"}
		}
	}

	session := &models.WalkSession{
		ID:       uuid.New().String(),
		WalkerID: walkerID,
		Status:   models.SessionActive,
	}
	if err := m.Sessions.Create(ctx, session); err != nil {
		// Fail closed: no bookings were touched.
		return nil, fmt.Errorf("pack walk: failed to create session: %w", err)
	}

	linked := make([]string, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		if err := m.Bookings.SetSessionID(ctx, id, session.ID); err != nil {
			m.compensate(ctx, session.ID, linked)
			return nil, fmt.Errorf("pack walk: failed to link booking %s: %w", id, err)
		}
		linked = append(linked, id)
	}

	return session, nil
}

// compensate rolls back a partially linked pack walk: unlink what was
// linked and close the session so it cannot be joined. Best effort only;
// failures here are logged and left for manual cleanup.
func (m *SessionManager) compensate(ctx context.Context, sessionID string, linked []string) {
	logger := utils.GetLogger()
	for _, id := range linked {
		if err := m.Bookings.ClearSessionID(ctx, id); err != nil {
			logger.Error("pack walk compensation: failed to unlink booking",
				zap.String("bookingID", id),
				zap.String("sessionID", sessionID),
				zap.Error(err))
		}
	}
	if err := m.Sessions.Complete(ctx, sessionID); err != nil {
		logger.Error("pack walk compensation: failed to close session",
			zap.String("sessionID", sessionID),
			zap.Error(err))
	}
}

// CloseIfFinished marks the session completed once no linked booking
// remains open. Returns true when the session was (or already is) closed.
func (m *SessionManager) CloseIfFinished(ctx context.Context, sessionID string) (bool, error) {
	open, err := m.Bookings.CountOpenBySession(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if open > 0 {
		return false, nil
	}
	if err := m.Sessions.Complete(ctx, sessionID); err != nil {
		return false, err
	}
	return true, nil
}

// GetSession retrieves a walk session by id.
func (m *SessionManager) GetSession(ctx context.Context, id string) (*models.WalkSession, error) {
	return m.Sessions.GetByID(ctx, id)
}
