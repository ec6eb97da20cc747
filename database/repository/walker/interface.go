package walkerRepo

import (
	"context"

	"pawroute/models"
)

// WalkerRepository persists walker (provider) accounts.
type WalkerRepository interface {
	Create(walker *models.Walker) error
	GetByID(ctx context.Context, id string) (*models.Walker, error)
	GetByEmail(ctx context.Context, email string) (*models.Walker, error)
	Update(walker *models.Walker) error
	Delete(id string) error
	SetSuspended(ctx context.Context, id string, suspended bool) error
	SetFCMToken(ctx context.Context, id, token string) error

	// ApplyRating folds one star rating into the walker's aggregate.
	// previous is the rating being replaced; pass 0 for a fresh rating.
	ApplyRating(ctx context.Context, id string, previous, stars int) error

	GetAll(ctx context.Context) ([]models.Walker, error)
}
