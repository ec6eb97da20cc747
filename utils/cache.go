// File: pawroute/utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"pawroute/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// PositionCacheClient holds the latest device-reported GPS fix per walker
	// and carries the breadcrumb pub/sub channels.
	PositionCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func mustPing(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	mustPing(CacheClient, "Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	mustPing(AuthCacheClient, "Auth Cache")
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitPositionCache initializes the Redis client for device positions and
// breadcrumb pub/sub.
func InitPositionCache() {
	PositionCacheClient = newRedisClient(config.AppConfig.RedisPositionDB)
	mustPing(PositionCacheClient, "Position Cache")
}

// GetPositionCacheClient returns the Redis client for device positions.
func GetPositionCacheClient() *redis.Client {
	if PositionCacheClient == nil {
		InitPositionCache()
	}
	return PositionCacheClient
}
