package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"pawroute/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("booking %s not found: %w", id, err)
	}
	return &booking, nil
}

// UpdateStatus performs a conditional status transition. The filter matches
// both id and the expected current status, so two racing writers cannot both
// advance the same booking.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}

// SetCompletion moves the booking to completed and records the walker's
// post-walk report in the same conditional write.
func (r *MongoBookingRepo) SetCompletion(ctx context.Context, id string, from models.BookingStatus, notes string, peed, pooped bool) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{
		"status":     models.BookingCompleted,
		"walk_notes": notes,
		"peed":       peed,
		"pooped":     pooped,
		"updated_at": time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("failed to complete booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}

// SetSessionID links a booking to a pack-walk session. Only bookings still
// confirmed and unlinked may be linked.
func (r *MongoBookingRepo) SetSessionID(ctx context.Context, id, sessionID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":         id,
		"status":     models.BookingConfirmed,
		"session_id": bson.M{"$in": bson.A{nil, ""}},
	}
	update := bson.M{"$set": bson.M{"session_id": sessionID, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("failed to link booking %s to session %s: %w", id, sessionID, err)
	}
	if result.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}

// ClearSessionID removes a booking's session linkage. Used by pack-walk
// compensation when a later link in the batch fails.
func (r *MongoBookingRepo) ClearSessionID(ctx context.Context, id string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$unset": bson.M{"session_id": ""}, "$set": bson.M{"updated_at": time.Now()}}
	if _, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to unlink booking %s: %w", id, err)
	}
	return nil
}

// SetRating records the client's rating on a completed booking. A later
// write overwrites the earlier one; the store keeps no audit trail.
func (r *MongoBookingRepo) SetRating(ctx context.Context, id string, rating int) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.BookingCompleted}
	update := bson.M{"$set": bson.M{"rating": rating, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("failed to rate booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}
