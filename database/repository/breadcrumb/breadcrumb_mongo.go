package breadcrumbRepo

import (
	"context"
	"fmt"
	"time"

	"pawroute/database"
	"pawroute/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBreadcrumbRepo implements BreadcrumbRepository using MongoDB.
type MongoBreadcrumbRepo struct {
	coll *mongo.Collection
}

// NewMongoBreadcrumbRepo creates a new instance of BreadcrumbRepository using MongoDB.
func NewMongoBreadcrumbRepo() BreadcrumbRepository {
	repo := &MongoBreadcrumbRepo{coll: database.Collection("breadcrumbs")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create breadcrumb indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBreadcrumbRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert appends one GPS sample for the session and returns the stored row
// with its assigned id and creation time.
func (r *MongoBreadcrumbRepo) Insert(ctx context.Context, sessionID string, lat, lng float64) (*models.Breadcrumb, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	crumb := &models.Breadcrumb{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Latitude:  lat,
		Longitude: lng,
		CreatedAt: time.Now(),
	}
	if _, err := r.coll.InsertOne(ctxWithTimeout, crumb); err != nil {
		return nil, fmt.Errorf("failed to insert breadcrumb for session %s: %w", sessionID, err)
	}
	return crumb, nil
}

// ListRecent returns the newest breadcrumbs for a session, descending by
// creation time, bounded by limit.
func (r *MongoBreadcrumbRepo) ListRecent(ctx context.Context, sessionID string, limit int64) ([]models.Breadcrumb, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctxWithTimeout, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query breadcrumbs for session %s: %w", sessionID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var crumbs []models.Breadcrumb
	for cursor.Next(ctxWithTimeout) {
		var c models.Breadcrumb
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode breadcrumb: %w", err)
		}
		crumbs = append(crumbs, c)
	}
	return crumbs, nil
}
