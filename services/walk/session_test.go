package walk_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bookingRepo "pawroute/database/repository/booking"
	"pawroute/models"
	"pawroute/services/walk"

	"github.com/stretchr/testify/require"
)

// memBookings is a minimal in-memory BookingRepository for session tests.
type memBookings struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking

	failLinkFor string
}

func newMemBookings(bookings ...*models.Booking) *memBookings {
	m := &memBookings{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		m.bookings[b.ID] = b
	}
	return m
}

func (m *memBookings) Create(b *models.Booking) error { m.bookings[b.ID] = b; return nil }

func (m *memBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, errors.New("booking not found: " + id)
	}
	cp := *b
	return &cp, nil
}

func (m *memBookings) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	return nil
}

func (m *memBookings) SetCompletion(ctx context.Context, id string, from models.BookingStatus, notes string, peed, pooped bool) error {
	return nil
}

func (m *memBookings) SetSessionID(ctx context.Context, id, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == m.failLinkFor {
		return errors.New("forced link failure")
	}
	b, ok := m.bookings[id]
	if !ok || b.Status != models.BookingConfirmed || b.SessionID != "" {
		return bookingRepo.ErrStatusConflict
	}
	b.SessionID = sessionID
	return nil
}

func (m *memBookings) ClearSessionID(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bookings[id]; ok {
		b.SessionID = ""
	}
	return nil
}

func (m *memBookings) SetRating(ctx context.Context, id string, rating int) error { return nil }

func (m *memBookings) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return nil, nil
}

func (m *memBookings) ListByWalker(ctx context.Context, walkerID string) ([]models.Booking, error) {
	return nil, nil
}

func (m *memBookings) ListEligiblePack(ctx context.Context, walkerID, date string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.WalkerID == walkerID && b.Date == date && b.Status == models.BookingConfirmed && b.SessionID == "" {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookings) CountOpenBySession(ctx context.Context, sessionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.bookings {
		if b.SessionID == sessionID && !b.Status.Terminal() {
			n++
		}
	}
	return n, nil
}

func (m *memBookings) GetAll(ctx context.Context) ([]models.Booking, error) { return nil, nil }

// memSessions is an in-memory SessionRepository.
type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*models.WalkSession
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]*models.WalkSession)}
}

func (m *memSessions) Create(ctx context.Context, s *models.WalkSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memSessions) GetByID(ctx context.Context, id string) (*models.WalkSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.New("session not found: " + id)
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) Complete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.Status = models.SessionCompleted
	}
	return nil
}

func (m *memSessions) ListByWalker(ctx context.Context, walkerID string) ([]models.WalkSession, error) {
	return nil, nil
}

var testClock = func() time.Time {
	return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
}

func confirmedBooking(id, walkerID, date string) *models.Booking {
	return &models.Booking{
		ID:       id,
		ClientID: "client-" + id,
		WalkerID: walkerID,
		Status:   models.BookingConfirmed,
		Date:     date,
	}
}

func TestStartPackWalkLinksAllBookings(t *testing.T) {
	today := testClock().Format("2006-01-02")
	bookings := newMemBookings(
		confirmedBooking("b1", "w1", today),
		confirmedBooking("b2", "w1", today),
		confirmedBooking("b3", "w1", today),
	)
	sessions := newMemSessions()
	mgr := &walk.SessionManager{Sessions: sessions, Bookings: bookings, Now: testClock}

	session, err := mgr.StartPackWalk(context.Background(), "w1", []string{"b1", "b2", "b3"})
	require.NoError(t, err)
	require.Equal(t, models.SessionActive, session.Status)

	for _, id := range []string{"b1", "b2", "b3"} {
		b, err := bookings.GetByID(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, session.ID, b.SessionID, "every member shares the one session")
		require.Equal(t, models.BookingConfirmed, b.Status, "linking must not touch booking status")
	}
}

func TestStartPackWalkEmptySelection(t *testing.T) {
	mgr := &walk.SessionManager{Sessions: newMemSessions(), Bookings: newMemBookings(), Now: testClock}

	_, err := mgr.StartPackWalk(context.Background(), "w1", nil)
	require.ErrorIs(t, err, walk.ErrNoBookings)
}

func TestStartPackWalkEligibility(t *testing.T) {
	today := testClock().Format("2006-01-02")
	yesterday := testClock().AddDate(0, 0, -1).Format("2006-01-02")

	stale := confirmedBooking("stale", "w1", yesterday)
	foreign := confirmedBooking("foreign", "w2", today)
	pending := confirmedBooking("pending", "w1", today)
	pending.Status = models.BookingPending
	linked := confirmedBooking("linked", "w1", today)
	linked.SessionID = "other-session"
	ok := confirmedBooking("ok", "w1", today)

	bookings := newMemBookings(stale, foreign, pending, linked, ok)
	sessions := newMemSessions()
	mgr := &walk.SessionManager{Sessions: sessions, Bookings: bookings, Now: testClock}

	var eErr *walk.EligibilityError
	for _, ids := range [][]string{
		{"ok", "stale"},
		{"ok", "foreign"},
		{"ok", "pending"},
		{"ok", "linked"},
	} {
		_, err := mgr.StartPackWalk(context.Background(), "w1", ids)
		require.ErrorAs(t, err, &eErr, "selection %v must be rejected", ids)
	}

	// Failing eligibility creates nothing and links nothing.
	require.Empty(t, sessions.sessions)
	b, err := bookings.GetByID(context.Background(), "ok")
	require.NoError(t, err)
	require.Empty(t, b.SessionID)
}

func TestStartPackWalkCompensatesPartialFailure(t *testing.T) {
	today := testClock().Format("2006-01-02")
	bookings := newMemBookings(
		confirmedBooking("b1", "w1", today),
		confirmedBooking("b2", "w1", today),
		confirmedBooking("b3", "w1", today),
	)
	bookings.failLinkFor = "b3"
	sessions := newMemSessions()
	mgr := &walk.SessionManager{Sessions: sessions, Bookings: bookings, Now: testClock}

	_, err := mgr.StartPackWalk(context.Background(), "w1", []string{"b1", "b2", "b3"})
	require.Error(t, err)

	// The two linked bookings were unlinked again.
	for _, id := range []string{"b1", "b2"} {
		b, err := bookings.GetByID(context.Background(), id)
		require.NoError(t, err)
		require.Empty(t, b.SessionID)
		require.Equal(t, models.BookingConfirmed, b.Status)
	}

	// The created session was closed so it cannot be joined.
	for _, s := range sessions.sessions {
		require.Equal(t, models.SessionCompleted, s.Status)
	}
}

func TestCloseIfFinished(t *testing.T) {
	today := testClock().Format("2006-01-02")
	b1 := confirmedBooking("b1", "w1", today)
	b2 := confirmedBooking("b2", "w1", today)
	bookings := newMemBookings(b1, b2)
	sessions := newMemSessions()
	mgr := &walk.SessionManager{Sessions: sessions, Bookings: bookings, Now: testClock}

	session, err := mgr.StartPackWalk(context.Background(), "w1", []string{"b1", "b2"})
	require.NoError(t, err)

	closed, err := mgr.CloseIfFinished(context.Background(), session.ID)
	require.NoError(t, err)
	require.False(t, closed, "open bookings keep the session alive")

	b1.Status = models.BookingCompleted
	b2.Status = models.BookingCancelled

	closed, err = mgr.CloseIfFinished(context.Background(), session.ID)
	require.NoError(t, err)
	require.True(t, closed)

	got, err := mgr.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	require.Equal(t, models.SessionCompleted, got.Status)
}
