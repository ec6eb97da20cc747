package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bookingRepo "pawroute/database/repository/booking"
	"pawroute/models"
	"pawroute/services/booking"
	"pawroute/services/walk"

	"github.com/stretchr/testify/require"
)

// fakeBookingStore is an in-memory BookingRepository with the same
// conditional-write semantics as the Mongo implementation.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking

	failSetSessionFor string // booking id whose SetSessionID call fails
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[string]*models.Booking)}
}

func (s *fakeBookingStore) Create(b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, errors.New("booking not found: " + id)
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	return nil
}

func (s *fakeBookingStore) SetCompletion(ctx context.Context, id string, from models.BookingStatus, notes string, peed, pooped bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = models.BookingCompleted
	b.WalkNotes = notes
	b.Peed = peed
	b.Pooped = pooped
	return nil
}

func (s *fakeBookingStore) SetSessionID(ctx context.Context, id, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == s.failSetSessionFor {
		return errors.New("forced link failure")
	}
	b, ok := s.bookings[id]
	if !ok || b.Status != models.BookingConfirmed || b.SessionID != "" {
		return bookingRepo.ErrStatusConflict
	}
	b.SessionID = sessionID
	return nil
}

func (s *fakeBookingStore) ClearSessionID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		b.SessionID = ""
	}
	return nil
}

func (s *fakeBookingStore) SetRating(ctx context.Context, id string, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.Status != models.BookingCompleted {
		return bookingRepo.ErrStatusConflict
	}
	b.Rating = rating
	return nil
}

func (s *fakeBookingStore) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) ListByWalker(ctx context.Context, walkerID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.WalkerID == walkerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) ListEligiblePack(ctx context.Context, walkerID, date string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.WalkerID == walkerID && b.Date == date && b.Status == models.BookingConfirmed && b.SessionID == "" {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) CountOpenBySession(ctx context.Context, sessionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, b := range s.bookings {
		if b.SessionID == sessionID && !b.Status.Terminal() {
			n++
		}
	}
	return n, nil
}

func (s *fakeBookingStore) GetAll(ctx context.Context) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	return out, nil
}

// fakeDogStore implements DogRepository over a map.
type fakeDogStore struct {
	dogs map[string]*models.Dog
}

func (s *fakeDogStore) Create(dog *models.Dog) error { s.dogs[dog.ID] = dog; return nil }
func (s *fakeDogStore) GetByID(ctx context.Context, id string) (*models.Dog, error) {
	d, ok := s.dogs[id]
	if !ok {
		return nil, errors.New("dog not found: " + id)
	}
	return d, nil
}
func (s *fakeDogStore) Update(dog *models.Dog) error                          { return nil }
func (s *fakeDogStore) Delete(id string) error                                { return nil }
func (s *fakeDogStore) SetPhotoURL(ctx context.Context, id, url string) error { return nil }
func (s *fakeDogStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Dog, error) {
	return nil, nil
}

// fakeWalkerStore implements WalkerRepository and records rating calls.
type fakeWalkerStore struct {
	walkers map[string]*models.Walker

	ratingCalls []struct{ previous, stars int }
}

func (s *fakeWalkerStore) Create(w *models.Walker) error { s.walkers[w.ID] = w; return nil }
func (s *fakeWalkerStore) GetByID(ctx context.Context, id string) (*models.Walker, error) {
	w, ok := s.walkers[id]
	if !ok {
		return nil, errors.New("walker not found: " + id)
	}
	return w, nil
}
func (s *fakeWalkerStore) GetByEmail(ctx context.Context, email string) (*models.Walker, error) {
	return nil, nil
}
func (s *fakeWalkerStore) Update(w *models.Walker) error                                 { return nil }
func (s *fakeWalkerStore) Delete(id string) error                                        { return nil }
func (s *fakeWalkerStore) SetSuspended(ctx context.Context, id string, v bool) error     { return nil }
func (s *fakeWalkerStore) SetFCMToken(ctx context.Context, id, token string) error       { return nil }
func (s *fakeWalkerStore) GetAll(ctx context.Context) ([]models.Walker, error)           { return nil, nil }
func (s *fakeWalkerStore) ApplyRating(ctx context.Context, id string, previous, stars int) error {
	s.ratingCalls = append(s.ratingCalls, struct{ previous, stars int }{previous, stars})
	return nil
}

// stubGeo always reports the same fix.
type stubGeo struct{ lat, lng float64 }

func (g stubGeo) Current(ctx context.Context, walkerID string) (float64, float64, error) {
	return g.lat, g.lng, nil
}

// stubCrumbs counts inserts.
type stubCrumbs struct {
	mu      sync.Mutex
	inserts int
}

func (c *stubCrumbs) Insert(ctx context.Context, sessionID string, lat, lng float64) (*models.Breadcrumb, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inserts++
	return &models.Breadcrumb{ID: "crumb", SessionID: sessionID, Latitude: lat, Longitude: lng, CreatedAt: time.Now()}, nil
}

func (c *stubCrumbs) ListRecent(ctx context.Context, sessionID string, limit int64) ([]models.Breadcrumb, error) {
	return nil, nil
}

// fakeReminders records scheduled reminder payloads.
type fakeReminders struct {
	scheduled []models.ReminderPayload
	fireAt    []time.Time
}

func (r *fakeReminders) Schedule(payload models.ReminderPayload, at time.Time) error {
	r.scheduled = append(r.scheduled, payload)
	r.fireAt = append(r.fireAt, at)
	return nil
}

func newTestService(t *testing.T) (*booking.DefaultBookingService, *fakeBookingStore, *fakeWalkerStore, *walk.TrackerPool) {
	t.Helper()

	bookings := newFakeBookingStore()
	walkers := &fakeWalkerStore{walkers: map[string]*models.Walker{
		"w1": {ID: "w1", Name: "Sam", HourlyRate: 20},
	}}
	dogs := &fakeDogStore{dogs: map[string]*models.Dog{
		"d1": {ID: "d1", OwnerID: "c1", Name: "Biscuit"},
	}}
	pool := walk.NewTrackerPool(&stubCrumbs{}, stubGeo{lat: 1, lng: 2}, nil, time.Hour)
	t.Cleanup(pool.StopAll)

	svc := &booking.DefaultBookingService{
		Repo:            bookings,
		DogRepo:         dogs,
		WalkerRepo:      walkers,
		Trackers:        pool,
		PlatformFeeRate: 0.15,
	}
	return svc, bookings, walkers, pool
}

func validInput() models.BookingInput {
	return models.BookingInput{
		WalkerID:    "w1",
		DogID:       "d1",
		Date:        "2026-09-01",
		StartMinute: 9 * 60,
		DurationMin: 60,
	}
}

func TestCreateBookingFreezesFees(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	b, err := svc.CreateBooking(context.Background(), "c1", validInput())
	require.NoError(t, err)
	require.Equal(t, models.BookingPending, b.Status)
	require.Equal(t, 20.0, b.TotalFee) // 20/hr for 60 min
	require.Equal(t, 3.0, b.PlatformFee)
	require.Equal(t, 17.0, b.WalkerPayout)
	require.Equal(t, b.TotalFee, b.PlatformFee+b.WalkerPayout)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	var vErr *booking.ValidationError

	in := validInput()
	in.DurationMin = 0
	_, err := svc.CreateBooking(ctx, "c1", in)
	require.ErrorAs(t, err, &vErr)

	in = validInput()
	in.Date = "Sep 1, 2026"
	_, err = svc.CreateBooking(ctx, "c1", in)
	require.ErrorAs(t, err, &vErr)

	in = validInput()
	in.StartMinute = 24 * 60
	_, err = svc.CreateBooking(ctx, "c1", in)
	require.ErrorAs(t, err, &vErr)

	// The dog belongs to c1, not c2.
	_, err = svc.CreateBooking(ctx, "c2", validInput())
	require.ErrorAs(t, err, &vErr)
}

func TestCreateBookingRejectsSuspendedWalker(t *testing.T) {
	svc, _, walkers, _ := newTestService(t)
	walkers.walkers["w1"].Suspended = true

	var vErr *booking.ValidationError
	_, err := svc.CreateBooking(context.Background(), "c1", validInput())
	require.ErrorAs(t, err, &vErr)
}

func TestAcceptBooking(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "c1", validInput())
	require.NoError(t, err)

	_, err = svc.AcceptBooking(ctx, "someone-else", b.ID)
	require.ErrorIs(t, err, booking.ErrNotYourBooking)

	accepted, err := svc.AcceptBooking(ctx, "w1", b.ID)
	require.NoError(t, err)
	require.Equal(t, models.BookingConfirmed, accepted.Status)

	// Accepting twice is an illegal move.
	var tErr *booking.TransitionError
	_, err = svc.AcceptBooking(ctx, "w1", b.ID)
	require.ErrorAs(t, err, &tErr)
}

func TestAcceptBookingSchedulesReminder(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	reminders := &fakeReminders{}
	svc.Reminders = reminders
	svc.ReminderLead = 30 * time.Minute
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "c1", validInput())
	require.NoError(t, err)
	_, err = svc.AcceptBooking(ctx, "w1", b.ID)
	require.NoError(t, err)

	require.Len(t, reminders.scheduled, 1)
	p := reminders.scheduled[0]
	require.Equal(t, b.ID, p.BookingID)
	require.Equal(t, "c1", p.ClientID)
	require.Equal(t, "Biscuit", p.DogName)
	require.Contains(t, p.Body, "Biscuit")

	walkStart := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	require.Equal(t, walkStart.Add(-30*time.Minute), reminders.fireAt[0])
}

func TestCancelBooking(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "c1", validInput())
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, "stranger", b.ID)
	require.ErrorIs(t, err, booking.ErrNotYourBooking)

	cancelled, err := svc.CancelBooking(ctx, "c1", b.ID)
	require.NoError(t, err)
	require.Equal(t, models.BookingCancelled, cancelled.Status)

	var tErr *booking.TransitionError
	_, err = svc.CancelBooking(ctx, "c1", b.ID)
	require.ErrorAs(t, err, &tErr)
}

func TestStartWalkSolo(t *testing.T) {
	svc, _, _, pool := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "c1", validInput())
	require.NoError(t, err)
	_, err = svc.AcceptBooking(ctx, "w1", b.ID)
	require.NoError(t, err)

	res, err := svc.StartWalk(ctx, "w1", b.ID)
	require.NoError(t, err)
	require.Equal(t, models.BookingActive, res.Booking.Status)
	require.Equal(t, b.ID, res.SessionID, "a solo walk tracks on the booking id")
	require.True(t, res.TrackerStarted)
	require.True(t, pool.Tracking(b.ID))
}

func TestStartWalkPackMember(t *testing.T) {
	svc, store, _, pool := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "c1", validInput())
	require.NoError(t, err)
	_, err = svc.AcceptBooking(ctx, "w1", b.ID)
	require.NoError(t, err)
	require.NoError(t, store.SetSessionID(ctx, b.ID, "pack-1"))

	res, err := svc.StartWalk(ctx, "w1", b.ID)
	require.NoError(t, err)
	require.Equal(t, models.BookingInProgress, res.Booking.Status)
	require.Equal(t, "pack-1", res.SessionID)
	require.False(t, res.TrackerStarted, "the shared session owns the tracker, not the member booking")
	require.False(t, pool.Tracking(b.ID))
}

func TestStartWalkRequiresConfirmed(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "c1", validInput())
	require.NoError(t, err)

	var tErr *booking.TransitionError
	_, err = svc.StartWalk(ctx, "w1", b.ID)
	require.ErrorAs(t, err, &tErr)
}

func TestCompleteWalkSolo(t *testing.T) {
	svc, _, _, pool := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "c1", validInput())
	require.NoError(t, err)
	_, err = svc.AcceptBooking(ctx, "w1", b.ID)
	require.NoError(t, err)
	_, err = svc.StartWalk(ctx, "w1", b.ID)
	require.NoError(t, err)

	done, err := svc.CompleteWalk(ctx, "w1", b.ID, "Great walk, very waggy", true, false)
	require.NoError(t, err)
	require.Equal(t, models.BookingCompleted, done.Status)
	require.Equal(t, "Great walk, very waggy", done.WalkNotes)
	require.True(t, done.Peed)
	require.False(t, done.Pooped)
	require.False(t, pool.Tracking(b.ID), "completing a solo walk stops its tracker")
}

func TestCompleteWalkRequiresWalking(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "c1", validInput())
	require.NoError(t, err)
	_, err = svc.AcceptBooking(ctx, "w1", b.ID)
	require.NoError(t, err)

	var tErr *booking.TransitionError
	_, err = svc.CompleteWalk(ctx, "w1", b.ID, "", false, false)
	require.ErrorAs(t, err, &tErr)
}

func TestRateBooking(t *testing.T) {
	svc, _, walkers, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "c1", validInput())
	require.NoError(t, err)
	_, err = svc.AcceptBooking(ctx, "w1", b.ID)
	require.NoError(t, err)

	// Not completed yet.
	_, err = svc.RateBooking(ctx, "c1", b.ID, 5)
	require.ErrorIs(t, err, booking.ErrNotRatable)

	_, err = svc.StartWalk(ctx, "w1", b.ID)
	require.NoError(t, err)
	_, err = svc.CompleteWalk(ctx, "w1", b.ID, "", false, false)
	require.NoError(t, err)

	var vErr *booking.ValidationError
	_, err = svc.RateBooking(ctx, "c1", b.ID, 0)
	require.ErrorAs(t, err, &vErr)
	_, err = svc.RateBooking(ctx, "c1", b.ID, 6)
	require.ErrorAs(t, err, &vErr)

	_, err = svc.RateBooking(ctx, "stranger", b.ID, 4)
	require.ErrorIs(t, err, booking.ErrNotYourBooking)

	rated, err := svc.RateBooking(ctx, "c1", b.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 4, rated.Rating)

	// Re-rating replaces the stars and hands the aggregate the value
	// being displaced so it is not double-counted.
	rated, err = svc.RateBooking(ctx, "c1", b.ID, 5)
	require.NoError(t, err)
	require.Equal(t, 5, rated.Rating)

	require.Len(t, walkers.ratingCalls, 2)
	require.Equal(t, 0, walkers.ratingCalls[0].previous)
	require.Equal(t, 4, walkers.ratingCalls[0].stars)
	require.Equal(t, 4, walkers.ratingCalls[1].previous)
	require.Equal(t, 5, walkers.ratingCalls[1].stars)
}

func TestReceipt(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "c1", validInput())
	require.NoError(t, err)

	_, err = svc.Receipt(ctx, "stranger", b.ID)
	require.ErrorIs(t, err, booking.ErrNotYourBooking)

	for _, actor := range []string{"c1", "w1"} {
		r, err := svc.Receipt(ctx, actor, b.ID)
		require.NoError(t, err)
		require.Equal(t, b.TotalFee, r.TotalFee)
		require.Equal(t, b.PlatformFee, r.PlatformFee)
		require.Equal(t, b.WalkerPayout, r.WalkerPayout)
		require.Equal(t, r.TotalFee, r.PlatformFee+r.WalkerPayout)
	}
}
