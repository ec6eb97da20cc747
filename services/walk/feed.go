package walk

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	breadcrumbRepo "pawroute/database/repository/breadcrumb"
	"pawroute/models"
	"pawroute/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Trail is the bounded, most-recent-first breadcrumb window a viewer
// holds. Pushes prepend; the buffer is truncated back to its capacity, so
// it never grows past the window regardless of how many crumbs arrive.
// Incoming pushes are not re-sorted against the buffer; store order is
// trusted.
type Trail struct {
	mu       sync.Mutex
	capacity int
	crumbs   []models.Breadcrumb
}

// NewTrail creates a trail with the given fixed capacity.
func NewTrail(capacity int) *Trail {
	return &Trail{capacity: capacity}
}

// Seed replaces the trail contents with an initial fetch (already
// descending by time), truncated to capacity.
func (t *Trail) Seed(crumbs []models.Breadcrumb) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(crumbs) > t.capacity {
		crumbs = crumbs[:t.capacity]
	}
	t.crumbs = append([]models.Breadcrumb(nil), crumbs...)
}

// Push prepends one crumb and evicts the oldest entry past capacity.
func (t *Trail) Push(crumb models.Breadcrumb) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.crumbs = append([]models.Breadcrumb{crumb}, t.crumbs...)
	if len(t.crumbs) > t.capacity {
		t.crumbs = t.crumbs[:t.capacity]
	}
}

// Snapshot returns a copy of the current window, most recent first.
func (t *Trail) Snapshot() []models.Breadcrumb {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.Breadcrumb(nil), t.crumbs...)
}

// Len returns the number of crumbs currently buffered.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.crumbs)
}

// Feed is the viewer side of the location relay: an initial bounded fetch
// from the store, then per-session push updates over Redis pub/sub.
type Feed struct {
	Crumbs breadcrumbRepo.BreadcrumbRepository
	Redis  *redis.Client
	Window int
}

// Recent returns the newest breadcrumbs for a session, bounded to the
// feed window, descending by creation time.
func (f *Feed) Recent(ctx context.Context, sessionID string) ([]models.Breadcrumb, error) {
	return f.Crumbs.ListRecent(ctx, sessionID, int64(f.Window))
}

// Follower is one live subscription to a session's breadcrumbs. Updates
// carries each pushed crumb after it has been applied to the trail; the
// channel closes when the subscription ends.
type Follower struct {
	trail   *Trail
	updates chan models.Breadcrumb
	pubsub  *redis.PubSub
	once    sync.Once
}

// Trail returns the follower's bounded window.
func (fl *Follower) Trail() *Trail { return fl.trail }

// Updates streams pushed breadcrumbs to the consumer.
func (fl *Follower) Updates() <-chan models.Breadcrumb { return fl.updates }

// Close releases the subscription. Idempotent; called on viewer teardown.
func (fl *Follower) Close() {
	fl.once.Do(func() {
		_ = fl.pubsub.Close()
	})
}

// Follow seeds a trail from the store and subscribes to the session's
// push channel. The subscription is released when ctx is cancelled or
// Close is called.
func (f *Feed) Follow(ctx context.Context, sessionID string) (*Follower, error) {
	seed, err := f.Recent(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to seed breadcrumb trail for session %s: %w", sessionID, err)
	}

	trail := NewTrail(f.Window)
	trail.Seed(seed)

	pubsub := f.Redis.Subscribe(ctx, crumbChannel(sessionID))
	// Force the subscription to be established before returning so no
	// crumb published after Follow is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to session %s: %w", sessionID, err)
	}

	fl := &Follower{
		trail:   trail,
		updates: make(chan models.Breadcrumb, f.Window),
		pubsub:  pubsub,
	}

	go func() {
		defer close(fl.updates)
		logger := utils.GetLogger()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				fl.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var crumb models.Breadcrumb
				if err := json.Unmarshal([]byte(msg.Payload), &crumb); err != nil {
					logger.Warn("dropping malformed breadcrumb push",
						zap.String("sessionID", sessionID), zap.Error(err))
					continue
				}
				trail.Push(crumb)
				select {
				case fl.updates <- crumb:
				default:
					// Slow consumer; the trail still has the crumb.
				}
			}
		}
	}()

	return fl, nil
}
