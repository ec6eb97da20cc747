package breadcrumbRepo

import (
	"context"

	"pawroute/models"
)

// BreadcrumbRepository is the append-only store for GPS samples. Rows are
// never updated or deleted; creation time is assigned on insert.
type BreadcrumbRepository interface {
	Insert(ctx context.Context, sessionID string, lat, lng float64) (*models.Breadcrumb, error)
	ListRecent(ctx context.Context, sessionID string, limit int64) ([]models.Breadcrumb, error)
}
