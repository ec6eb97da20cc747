package userRepo

import (
	"context"

	"pawroute/models"
)

// UserRepository persists client (dog owner) accounts.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id string) error
	SetSuspended(ctx context.Context, id string, suspended bool) error
	SetFCMToken(ctx context.Context, id, token string) error
	GetAll(ctx context.Context) ([]models.User, error)
}
