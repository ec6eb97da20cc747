package walk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Geolocator resolves a walker's current position. Implementations fail
// with a *GeoError so the tracker can classify and drop bad samples.
type Geolocator interface {
	Current(ctx context.Context, walkerID string) (lat, lng float64, err error)
}

// DevicePosition is the latest GPS fix a walker's device reported.
type DevicePosition struct {
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	PermissionDenied bool      `json:"permissionDenied,omitempty"`
	RecordedAt       time.Time `json:"recordedAt"`
}

func positionKey(walkerID string) string {
	return "pos:" + walkerID
}

// RedisGeolocator reads walker positions from the Redis position cache.
// Devices report fixes through the walker API; a fix older than MaxAge is
// treated as a timeout, a missing fix as unavailable.
type RedisGeolocator struct {
	Client *redis.Client
	MaxAge time.Duration
}

// ReportPosition stores the device's latest fix. A device that lost
// location permission reports PermissionDenied instead of coordinates.
func (g *RedisGeolocator) ReportPosition(ctx context.Context, walkerID string, pos DevicePosition) error {
	pos.RecordedAt = time.Now()
	data, err := json.Marshal(pos)
	if err != nil {
		return fmt.Errorf("failed to marshal device position: %w", err)
	}
	if err := g.Client.Set(ctx, positionKey(walkerID), data, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("failed to store device position for walker %s: %w", walkerID, err)
	}
	return nil
}

// Current returns the walker's freshest fix or a classified *GeoError.
func (g *RedisGeolocator) Current(ctx context.Context, walkerID string) (float64, float64, error) {
	data, err := g.Client.Get(ctx, positionKey(walkerID)).Result()
	if err == redis.Nil {
		return 0, 0, &GeoError{Kind: GeoUnavailable}
	}
	if err != nil {
		return 0, 0, &GeoError{Kind: GeoUnavailable, Err: err}
	}

	var pos DevicePosition
	if err := json.Unmarshal([]byte(data), &pos); err != nil {
		return 0, 0, &GeoError{Kind: GeoUnavailable, Err: err}
	}
	if pos.PermissionDenied {
		return 0, 0, &GeoError{Kind: GeoPermissionDenied}
	}
	if time.Since(pos.RecordedAt) > g.MaxAge {
		return 0, 0, &GeoError{Kind: GeoTimeout}
	}
	return pos.Latitude, pos.Longitude, nil
}
