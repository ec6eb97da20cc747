package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"pawroute/database"
	"pawroute/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a new instance of SessionRepository using MongoDB.
func NewMongoSessionRepo() SessionRepository {
	repo := &MongoSessionRepo{coll: database.Collection("walk_sessions")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create session indexes: %v\n", err)
	}
	return repo
}

func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "walker_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new walk session document.
func (r *MongoSessionRepo) Create(ctx context.Context, session *models.WalkSession) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctxWithTimeout, session); err != nil {
		return fmt.Errorf("failed to create walk session: %w", err)
	}
	return nil
}

// GetByID retrieves a walk session by its ID.
func (r *MongoSessionRepo) GetByID(ctx context.Context, id string) (*models.WalkSession, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.WalkSession
	if err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&session); err != nil {
		return nil, fmt.Errorf("walk session %s not found: %w", id, err)
	}
	return &session, nil
}

// Complete marks a walk session completed. Idempotent.
func (r *MongoSessionRepo) Complete(ctx context.Context, id string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": models.SessionCompleted, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to complete walk session %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("walk session %s not found", id)
	}
	return nil
}

// ListByWalker retrieves a walker's sessions, newest first.
func (r *MongoSessionRepo) ListByWalker(ctx context.Context, walkerID string) ([]models.WalkSession, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctxWithTimeout, bson.M{"walker_id": walkerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query walk sessions: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var sessions []models.WalkSession
	for cursor.Next(ctxWithTimeout) {
		var s models.WalkSession
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode walk session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
