package walk

import (
	"context"
	"encoding/json"
	"fmt"

	"pawroute/models"

	"github.com/go-redis/redis/v8"
)

// crumbChannel is the pub/sub channel carrying a session's breadcrumbs.
func crumbChannel(sessionID string) string {
	return "walk:crumbs:" + sessionID
}

// BreadcrumbPublisher fans freshly stored breadcrumbs out to live viewers.
type BreadcrumbPublisher interface {
	Publish(ctx context.Context, crumb *models.Breadcrumb) error
}

// RedisPublisher publishes breadcrumbs on a per-session Redis channel.
type RedisPublisher struct {
	Client *redis.Client
}

func (p *RedisPublisher) Publish(ctx context.Context, crumb *models.Breadcrumb) error {
	data, err := json.Marshal(crumb)
	if err != nil {
		return fmt.Errorf("failed to marshal breadcrumb: %w", err)
	}
	if err := p.Client.Publish(ctx, crumbChannel(crumb.SessionID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish breadcrumb for session %s: %w", crumb.SessionID, err)
	}
	return nil
}
