package models

import "time"

// BookingStatus is the closed set of lifecycle states a booking may hold.
// Status writes go through CanTransition; free-form strings are rejected
// at the service layer before they ever reach the store.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"     // created by the client, awaiting walker acceptance
	BookingConfirmed  BookingStatus = "confirmed"   // accepted by the walker
	BookingActive     BookingStatus = "active"      // solo walk underway, tracker running on the booking id
	BookingInProgress BookingStatus = "in_progress" // walk underway as part of a shared session
	BookingCompleted  BookingStatus = "completed"   // walk finished, booking is ratable
	BookingCancelled  BookingStatus = "cancelled"
)

// legalTransitions enumerates every edge of the booking lifecycle.
var legalTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingActive, BookingInProgress, BookingCancelled},
	BookingActive:     {BookingCompleted},
	BookingInProgress: {BookingCompleted},
}

// Valid reports whether s is one of the enumerated statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingActive,
		BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanTransition reports whether s -> to is a legal lifecycle edge.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range legalTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsWalking reports whether the booking's walk is currently underway.
// Both solo (active) and session-linked (in_progress) count; filters for
// "currently walking" must use this instead of checking one of the two.
func (s BookingStatus) IsWalking() bool {
	return s == BookingActive || s == BookingInProgress
}

// Terminal reports whether no further transition is possible.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// Booking represents one walk engagement between a client and a walker.
type Booking struct {
	ID       string `bson:"id" json:"id"`              // Unique booking identifier (UUID)
	ClientID string `bson:"client_id" json:"clientId"` // User who made the booking
	WalkerID string `bson:"walker_id" json:"walkerId"` // Walker who was booked
	DogID    string `bson:"dog_id" json:"dogId"`       // Dog being walked; owner must match ClientID at creation

	Date        string `bson:"date" json:"date"`                // Walk date in "YYYY-MM-DD" format
	StartMinute int    `bson:"start_minute" json:"startMinute"` // Start time (minutes from midnight)
	DurationMin int    `bson:"duration_min" json:"durationMin"` // Walk duration in minutes, must be positive

	Status BookingStatus `bson:"status" json:"status"`

	// Fees are computed once at creation from the walker's hourly rate and
	// never recomputed. Invariant: PlatformFee + WalkerPayout == TotalFee
	// to the cent.
	TotalFee     float64 `bson:"total_fee" json:"totalFee"`
	PlatformFee  float64 `bson:"platform_fee" json:"platformFee"`
	WalkerPayout float64 `bson:"walker_payout" json:"walkerPayout"`

	// SessionID is set only when the booking is folded into a pack walk.
	SessionID string `bson:"session_id,omitempty" json:"sessionId,omitempty"`

	// Post-walk fields, set by the walker on completion (rating by the client).
	Rating    int    `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5, zero means unrated
	WalkNotes string `bson:"walk_notes,omitempty" json:"walkNotes,omitempty"`
	Peed      bool   `bson:"peed" json:"peed"`
	Pooped    bool   `bson:"pooped" json:"pooped"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// WalkSessionID returns the session a running walk publishes breadcrumbs
// under: the linked pack session when present, otherwise the booking id
// itself (a solo walk's booking id doubles as its session id).
func (b *Booking) WalkSessionID() string {
	if b.SessionID != "" {
		return b.SessionID
	}
	return b.ID
}

// BookingInput carries the client-supplied fields for booking creation.
type BookingInput struct {
	WalkerID    string `json:"walkerId" binding:"required"`
	DogID       string `json:"dogId" binding:"required"`
	Date        string `json:"date" binding:"required"` // "YYYY-MM-DD"
	StartMinute int    `json:"startMinute"`
	DurationMin int    `json:"durationMin" binding:"required"`
}

// Receipt is the frozen post-walk view of a completed booking.
type Receipt struct {
	BookingID    string  `json:"bookingId"`
	Date         string  `json:"date"`
	DurationMin  int     `json:"durationMin"`
	TotalFee     float64 `json:"totalFee"`
	PlatformFee  float64 `json:"platformFee"`
	WalkerPayout float64 `json:"walkerPayout"`
	WalkNotes    string  `json:"walkNotes"`
	Peed         bool    `json:"peed"`
	Pooped       bool    `json:"pooped"`
	Rating       int     `json:"rating,omitempty"`
}
