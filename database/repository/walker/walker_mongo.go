package walkerRepo

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

// MongoWalkerRepo implements WalkerRepository using MongoDB.
type MongoWalkerRepo struct {
	coll *mongo.Collection
}

// NewMongoWalkerRepo creates a new instance of WalkerRepository using MongoDB.
func NewMongoWalkerRepo() WalkerRepository {
	repo := &MongoWalkerRepo{coll: database.Collection("walkers")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create walker indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoWalkerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new walker document.
func (r *MongoWalkerRepo) Create(walker *models.Walker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	walker.CreatedAt = now
	walker.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, walker); err != nil {
		return fmt.Errorf("failed to create walker: %w", err)
	}
	return nil
}

// GetByID retrieves a walker by its unique ID.
func (r *MongoWalkerRepo) GetByID(ctx context.Context, id string) (*models.Walker, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var walker models.Walker
	if err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&walker); err != nil {
		return nil, fmt.Errorf("failed to fetch walker with id %s: %w", id, err)
	}
	return &walker, nil
}

// GetByEmail retrieves a walker by email. Returns (nil, nil) on no match.
func (r *MongoWalkerRepo) GetByEmail(ctx context.Context, email string) (*models.Walker, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var walker models.Walker
	if err := r.coll.FindOne(ctxWithTimeout, bson.M{"email": email}).Decode(&walker); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch walker with email %s: %w", email, err)
	}
	return &walker, nil
}

// Update modifies an existing walker document.
func (r *MongoWalkerRepo) Update(walker *models.Walker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	walker.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": walker.ID}, bson.M{"$set": walker})
	if err != nil {
		return fmt.Errorf("failed to update walker with id %s: %w", walker.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("walker with id %s not found", walker.ID)
	}
	return nil
}

// Delete removes a walker document by its ID.
func (r *MongoWalkerRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete walker with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("walker with id %s not found", id)
	}
	return nil
}

// SetSuspended toggles the moderation flag on a walker account.
func (r *MongoWalkerRepo) SetSuspended(ctx context.Context, id string, suspended bool) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"suspended": suspended, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update suspension for walker %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("walker with id %s not found", id)
	}
	return nil
}

// SetFCMToken stores the device push token for the walker.
func (r *MongoWalkerRepo) SetFCMToken(ctx context.Context, id, token string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"fcm_token": token, "updated_at": time.Now()}}
	if _, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to set fcm token for walker %s: %w", id, err)
	}
	return nil
}

// ApplyRating folds one star rating into the walker's aggregate. When a
// client overwrites an earlier rating, previous carries the replaced value
// so only the average moves and the count stays put.
func (r *MongoWalkerRepo) ApplyRating(ctx context.Context, id string, previous, stars int) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	walker, err := r.GetByID(ctxWithTimeout, id)
	if err != nil {
		return err
	}

	sum := walker.RatingAvg * float64(walker.RatingCount)
	count := walker.RatingCount
	if previous > 0 {
		sum += float64(stars - previous)
	} else {
		sum += float64(stars)
		count++
	}
	avg := 0.0
	if count > 0 {
		avg = sum / float64(count)
	}

	update := bson.M{"$set": bson.M{
		"rating_count": count,
		"rating_avg":   avg,
		"updated_at":   time.Now(),
	}}
	if _, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to apply rating for walker %s: %w", id, err)
	}
	return nil
}

// GetAll retrieves all walkers. Admin dashboards only.
func (r *MongoWalkerRepo) GetAll(ctx context.Context) ([]models.Walker, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctxWithTimeout, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve walkers: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var walkers []models.Walker
	for cursor.Next(ctxWithTimeout) {
		var w models.Walker
		if err := cursor.Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to decode walker: %w", err)
		}
		walkers = append(walkers, w)
	}
	return walkers, nil
}
