package models

import "time"

// WalkSession statuses. Only two states exist: a session is active while
// any linked booking is still being walked, completed once the last one is.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
)

// WalkSession groups several bookings being walked together ("pack walk").
// Bookings reference it through their session_id field; a solo walk never
// materializes a session row (the booking id doubles as the session id).
type WalkSession struct {
	ID        string    `bson:"id" json:"id"`
	WalkerID  string    `bson:"walker_id" json:"walkerId"` // Walker who started the pack walk
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Breadcrumb is one GPS sample recorded during a walk. Append-only; never
// updated or deleted. Listed most-recent-first.
type Breadcrumb struct {
	ID        string    `bson:"id" json:"id"`
	SessionID string    `bson:"session_id" json:"sessionId"`
	Latitude  float64   `bson:"latitude" json:"latitude"`
	Longitude float64   `bson:"longitude" json:"longitude"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"` // assigned by the store on insert
}
