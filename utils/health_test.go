package utils

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestHealthStatusHealthy(t *testing.T) {
	require.True(t, HealthStatus{Mongo: true, Redis: []bool{true, true}}.Healthy())
	require.True(t, HealthStatus{Mongo: true}.Healthy())
	require.False(t, HealthStatus{Mongo: false, Redis: []bool{true}}.Healthy())
	require.False(t, HealthStatus{Mongo: true, Redis: []bool{true, false}}.Healthy())
}

func TestStartHealthMonitorChecksAtBoot(t *testing.T) {
	// Unreachable backends with short timeouts: the checks fail fast and
	// the first snapshot must appear well before the first ticker cycle.
	rc := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	mc, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100*time.Millisecond).
		SetConnectTimeout(100*time.Millisecond))
	require.NoError(t, err)

	StartHealthMonitor([]*redis.Client{rc}, mc)

	require.Eventually(t, func() bool {
		return !GetHealthStatus().CheckedAt.IsZero()
	}, 5*time.Second, 50*time.Millisecond)

	status := GetHealthStatus()
	require.Len(t, status.Redis, 1)
	require.False(t, status.Healthy())
}
