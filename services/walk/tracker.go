package walk

import (
	"context"
	"errors"
	"sync"
	"time"

	breadcrumbRepo "pawroute/database/repository/breadcrumb"
	"pawroute/utils"

	"go.uber.org/zap"
)

// Tracker is one running sampling loop, bound to a walk session's
// lifetime. Start hands it out; Stop is its single cancellation method and
// is idempotent. Once stopped a tracker cannot be reused.
type Tracker struct {
	SessionID string
	WalkerID  string

	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// Stop cancels the sampling loop and blocks until it has fully exited.
// After Stop returns, no further breadcrumb insert occurs for this tracker.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		t.cancel()
		<-t.done
	})
}

// TrackerPool owns the active sampling loops, keyed by session id. One
// tracker per session; starting a second for the same session is an error.
type TrackerPool struct {
	Crumbs    breadcrumbRepo.BreadcrumbRepository
	Geo       Geolocator
	Publisher BreadcrumbPublisher
	Interval  time.Duration

	mu     sync.Mutex
	active map[string]*Tracker
}

// NewTrackerPool wires a pool over the breadcrumb store, geolocator and
// publisher. interval is the sampling period (10s in production).
func NewTrackerPool(crumbs breadcrumbRepo.BreadcrumbRepository, geo Geolocator, pub BreadcrumbPublisher, interval time.Duration) *TrackerPool {
	return &TrackerPool{
		Crumbs:    crumbs,
		Geo:       geo,
		Publisher: pub,
		Interval:  interval,
		active:    make(map[string]*Tracker),
	}
}

// Start begins sampling the walker's position for the session: one sample
// immediately, then one per interval until Stop. Failed samples are logged
// and dropped; the next tick proceeds regardless.
func (p *TrackerPool) Start(sessionID, walkerID string) (*Tracker, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.active[sessionID]; exists {
		return nil, errors.New("session " + sessionID + " is already being tracked")
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Tracker{
		SessionID: sessionID,
		WalkerID:  walkerID,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	p.active[sessionID] = t

	go p.run(ctx, t)
	return t, nil
}

// Stop halts the session's tracker, if one is running, and waits for its
// loop to exit. Safe to call for sessions that were never tracked.
func (p *TrackerPool) Stop(sessionID string) {
	p.mu.Lock()
	t, exists := p.active[sessionID]
	delete(p.active, sessionID)
	p.mu.Unlock()

	if exists {
		t.Stop()
	}
}

// Tracking reports whether a sampling loop is running for the session.
func (p *TrackerPool) Tracking(sessionID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, exists := p.active[sessionID]
	return exists
}

// StopAll halts every running tracker. Used on shutdown.
func (p *TrackerPool) StopAll() {
	p.mu.Lock()
	trackers := make([]*Tracker, 0, len(p.active))
	for id, t := range p.active {
		trackers = append(trackers, t)
		delete(p.active, id)
	}
	p.mu.Unlock()

	for _, t := range trackers {
		t.Stop()
	}
}

func (p *TrackerPool) run(ctx context.Context, t *Tracker) {
	defer close(t.done)

	logger := utils.GetLogger()
	logger.Info("tracker started",
		zap.String("sessionID", t.SessionID),
		zap.String("walkerID", t.WalkerID))

	p.sample(ctx, t)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("tracker stopped", zap.String("sessionID", t.SessionID))
			return
		case <-ticker.C:
			p.sample(ctx, t)
		}
	}
}

// sample takes one position reading and appends it as a breadcrumb.
// Geolocation failures are swallowed here: logged, never surfaced.
func (p *TrackerPool) sample(ctx context.Context, t *Tracker) {
	logger := utils.GetLogger()

	sampleCtx, cancel := context.WithTimeout(ctx, p.Interval)
	defer cancel()

	lat, lng, err := p.Geo.Current(sampleCtx, t.WalkerID)
	if err != nil {
		logger.Warn("position sample dropped",
			zap.String("sessionID", t.SessionID),
			zap.Error(err))
		return
	}

	crumb, err := p.Crumbs.Insert(sampleCtx, t.SessionID, lat, lng)
	if err != nil {
		logger.Warn("breadcrumb insert failed",
			zap.String("sessionID", t.SessionID),
			zap.Error(err))
		return
	}

	if p.Publisher != nil {
		if err := p.Publisher.Publish(sampleCtx, crumb); err != nil {
			logger.Warn("breadcrumb publish failed",
				zap.String("sessionID", t.SessionID),
				zap.Error(err))
		}
	}
}
