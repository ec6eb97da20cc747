package sessionRepo

import (
	"context"

	"pawroute/models"
)

// SessionRepository persists walk sessions (pack walks).
type SessionRepository interface {
	Create(ctx context.Context, session *models.WalkSession) error
	GetByID(ctx context.Context, id string) (*models.WalkSession, error)
	Complete(ctx context.Context, id string) error
	ListByWalker(ctx context.Context, walkerID string) ([]models.WalkSession, error)
}
