package dogRepo

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

// DogRepository persists dog profiles.
type DogRepository interface {
	Create(dog *models.Dog) error
	GetByID(ctx context.Context, id string) (*models.Dog, error)
	Update(dog *models.Dog) error
	Delete(id string) error
	SetPhotoURL(ctx context.Context, id, url string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Dog, error)
}

// MongoDogRepo implements DogRepository using MongoDB.
type MongoDogRepo struct {
	coll *mongo.Collection
}

// NewMongoDogRepo creates a new instance of DogRepository using MongoDB.
func NewMongoDogRepo() DogRepository {
	repo := &MongoDogRepo{coll: database.Collection("dogs")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create dog indexes: %v\n", err)
	}
	return repo
}

func (r *MongoDogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new dog document.
func (r *MongoDogRepo) Create(dog *models.Dog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	dog.CreatedAt = now
	dog.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, dog); err != nil {
		return fmt.Errorf("failed to create dog: %w", err)
	}
	return nil
}

// GetByID retrieves a dog by its unique ID.
func (r *MongoDogRepo) GetByID(ctx context.Context, id string) (*models.Dog, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var dog models.Dog
	if err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&dog); err != nil {
		return nil, fmt.Errorf("failed to fetch dog with id %s: %w", id, err)
	}
	return &dog, nil
}

// Update modifies an existing dog document.
func (r *MongoDogRepo) Update(dog *models.Dog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dog.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": dog.ID}, bson.M{"$set": dog})
	if err != nil {
		return fmt.Errorf("failed to update dog with id %s: %w", dog.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("dog with id %s not found", dog.ID)
	}
	return nil
}

// Delete removes a dog document by its ID.
func (r *MongoDogRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete dog with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("dog with id %s not found", id)
	}
	return nil
}

// SetPhotoURL stores the uploaded photo location for the dog.
func (r *MongoDogRepo) SetPhotoURL(ctx context.Context, id, url string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"photo_url": url, "updated_at": time.Now()}}
	if _, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to set photo url for dog %s: %w", id, err)
	}
	return nil
}

// ListByOwner retrieves all dogs belonging to a client.
func (r *MongoDogRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Dog, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctxWithTimeout, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to query dogs for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var dogs []models.Dog
	for cursor.Next(ctxWithTimeout) {
		var d models.Dog
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode dog: %w", err)
		}
		dogs = append(dogs, d)
	}
	return dogs, nil
}
