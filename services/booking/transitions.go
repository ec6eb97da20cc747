package booking

import (
	"context"
	"fmt"
	"time"

	"pawroute/models"
	"pawroute/utils"

	"go.uber.org/zap"
)

// transition performs one legality-checked, conditional status move. The
// store write matches on both id and the expected current status; a
// racing writer that got there first makes the write a no-op and the
// caller sees the conflict.
func (s *DefaultBookingService) transition(ctx context.Context, b *models.Booking, to models.BookingStatus) error {
	if !b.Status.CanTransition(to) {
		return &TransitionError{BookingID: b.ID, From: b.Status, To: to}
	}
	if err := s.Repo.UpdateStatus(ctx, b.ID, b.Status, to); err != nil {
		return err
	}
	b.Status = to
	return nil
}

// AcceptBooking is the walker's pending -> confirmed transition. On
// success a walk reminder is scheduled and the client is notified; both
// are fire-and-forget.
func (s *DefaultBookingService) AcceptBooking(ctx context.Context, walkerID, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.WalkerID != walkerID {
		return nil, ErrNotYourBooking
	}
	if err := s.transition(ctx, b, models.BookingConfirmed); err != nil {
		return nil, err
	}

	s.scheduleReminder(ctx, b)
	s.notifyClient(ctx, b, "Walk confirmed", "Your dog walk was accepted by the walker.")
	return b, nil
}

// CancelBooking moves a pending or confirmed booking to cancelled. Either
// party may cancel their own booking.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, actorID, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ClientID != actorID && b.WalkerID != actorID {
		return nil, ErrNotYourBooking
	}
	if err := s.transition(ctx, b, models.BookingCancelled); err != nil {
		return nil, err
	}
	return b, nil
}

// StartWalk begins the walk for a confirmed booking. A booking already
// folded into a pack session transitions to in_progress and control
// passes to the shared session: no tracker is started for it, which is
// what prevents duplicate breadcrumb streams. A solo booking transitions
// to active and a tracker starts on the booking's own id.
//
// The status write happens first; if it fails nothing is started.
func (s *DefaultBookingService) StartWalk(ctx context.Context, walkerID, bookingID string) (*StartWalkResult, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.WalkerID != walkerID {
		return nil, ErrNotYourBooking
	}

	if b.SessionID != "" {
		if err := s.transition(ctx, b, models.BookingInProgress); err != nil {
			return nil, err
		}
		s.notifyClient(ctx, b, "Walk started", "Your dog's group walk is underway.")
		return &StartWalkResult{Booking: b, SessionID: b.SessionID, TrackerStarted: false}, nil
	}

	if err := s.transition(ctx, b, models.BookingActive); err != nil {
		return nil, err
	}

	trackerStarted := false
	if s.Trackers != nil {
		if _, err := s.Trackers.Start(b.WalkSessionID(), walkerID); err != nil {
			// The walk is already active; a tracker that failed to start
			// is logged, not rolled back.
			utils.GetLogger().Error("failed to start tracker",
				zap.String("bookingID", b.ID), zap.Error(err))
		} else {
			trackerStarted = true
		}
	}

	s.notifyClient(ctx, b, "Walk started", "Your dog's walk is underway. Follow along live!")
	return &StartWalkResult{Booking: b, SessionID: b.WalkSessionID(), TrackerStarted: trackerStarted}, nil
}

// CompleteWalk ends the walk: active|in_progress -> completed, recording
// the walker's notes and elimination flags in the same write. The solo
// tracker is stopped before the caller sees the result; a pack session's
// tracker stops when its last booking completes.
func (s *DefaultBookingService) CompleteWalk(ctx context.Context, walkerID, bookingID, notes string, peed, pooped bool) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.WalkerID != walkerID {
		return nil, ErrNotYourBooking
	}
	if !b.Status.IsWalking() {
		return nil, &TransitionError{BookingID: b.ID, From: b.Status, To: models.BookingCompleted}
	}

	if err := s.Repo.SetCompletion(ctx, b.ID, b.Status, notes, peed, pooped); err != nil {
		return nil, err
	}
	b.Status = models.BookingCompleted
	b.WalkNotes = notes
	b.Peed = peed
	b.Pooped = pooped

	if b.SessionID == "" {
		// Solo walk: the booking id is the session id.
		if s.Trackers != nil {
			s.Trackers.Stop(b.ID)
		}
	} else if s.Sessions != nil {
		closed, err := s.Sessions.CloseIfFinished(ctx, b.SessionID)
		if err != nil {
			utils.GetLogger().Error("failed to close walk session",
				zap.String("sessionID", b.SessionID), zap.Error(err))
		} else if closed && s.Trackers != nil {
			s.Trackers.Stop(b.SessionID)
		}
	}

	s.notifyClient(ctx, b, "Walk complete", "Your dog is back! Check the walk report.")
	return b, nil
}

func (s *DefaultBookingService) notifyClient(ctx context.Context, b *models.Booking, title, body string) {
	if s.Notifier == nil {
		return
	}
	data := map[string]string{"bookingId": b.ID, "status": string(b.Status)}
	if err := s.Notifier.SendClientPush(ctx, b.ClientID, title, body, data); err != nil {
		utils.GetLogger().Warn("client push failed",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, b *models.Booking) {
	if s.Reminders == nil {
		return
	}
	walkDay, err := time.ParseInLocation("2006-01-02", b.Date, time.Local)
	if err != nil {
		utils.GetLogger().Warn("unparseable booking date, skipping reminder",
			zap.String("bookingID", b.ID), zap.String("date", b.Date))
		return
	}
	fireAt := walkDay.Add(time.Duration(b.StartMinute)*time.Minute - s.ReminderLead)

	var dogName string
	if dog, err := s.DogRepo.GetByID(ctx, b.DogID); err == nil {
		dogName = dog.Name
	} else {
		utils.GetLogger().Warn("dog lookup failed for reminder",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
	body := fmt.Sprintf("Walk scheduled for %s.", b.Date)
	if dogName != "" {
		body = fmt.Sprintf("Walk with %s scheduled for %s.", dogName, b.Date)
	}

	payload := models.ReminderPayload{
		BookingID: b.ID,
		ClientID:  b.ClientID,
		WalkerID:  b.WalkerID,
		DogName:   dogName,
		Date:      b.Date,
		Title:     "Upcoming walk",
		Body:      body,
	}
	if err := s.Reminders.Schedule(payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule walk reminder",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}
