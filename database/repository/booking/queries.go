package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"pawroute/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	for cursor.Next(ctxWithTimeout) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// ListByClient retrieves a client's bookings, newest first.
func (r *MongoBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.list(ctx, bson.M{"client_id": clientID}, opts)
}

// ListByWalker retrieves a walker's bookings, newest first.
func (r *MongoBookingRepo) ListByWalker(ctx context.Context, walkerID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.list(ctx, bson.M{"walker_id": walkerID}, opts)
}

// ListEligiblePack retrieves the walker's confirmed bookings for the given
// calendar date that carry no session linkage. Date comparison is plain
// string equality on the "YYYY-MM-DD" field.
func (r *MongoBookingRepo) ListEligiblePack(ctx context.Context, walkerID, date string) ([]models.Booking, error) {
	filter := bson.M{
		"walker_id":  walkerID,
		"date":       date,
		"status":     models.BookingConfirmed,
		"session_id": bson.M{"$in": bson.A{nil, ""}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_minute", Value: 1}})
	return r.list(ctx, filter, opts)
}

// CountOpenBySession counts session-linked bookings that have not reached a
// terminal state yet.
func (r *MongoBookingRepo) CountOpenBySession(ctx context.Context, sessionID string) (int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"session_id": sessionID,
		"status":     bson.M{"$nin": bson.A{models.BookingCompleted, models.BookingCancelled}},
	}
	count, err := r.coll.CountDocuments(ctxWithTimeout, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count open bookings for session %s: %w", sessionID, err)
	}
	return count, nil
}

// GetAll retrieves every booking. Admin dashboards only.
func (r *MongoBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.list(ctx, bson.M{}, opts)
}
