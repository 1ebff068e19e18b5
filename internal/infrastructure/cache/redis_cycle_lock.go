package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// RedisCycleLock implements CycleLock using Redis. Suitable for distributed
// deployments where multiple instances must serialize writes to the same
// billing cycle.
type RedisCycleLock struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisCycleLock creates a new Redis-based cycle lock
func NewRedisCycleLock(cfg RedisConfig) (*RedisCycleLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCycleLock{
		client:    client,
		keyPrefix: "lock:",
	}, nil
}

// NewRedisCycleLockWithClient creates a lock with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisCycleLockWithClient(client *redis.Client, keyPrefix string) *RedisCycleLock {
	if keyPrefix == "" {
		keyPrefix = "lock:"
	}
	return &RedisCycleLock{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Acquire takes the lock if nobody else holds it. SETNX with a TTL is a
// single atomic operation, and the TTL bounds how long a crashed holder
// can block other writers.
func (l *RedisCycleLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := l.client.SetNX(ctx, l.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return acquired, nil
}

// Release frees the lock
func (l *RedisCycleLock) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (l *RedisCycleLock) Close() error {
	return l.client.Close()
}

// Ensure RedisCycleLock implements CycleLock
var _ shared.CycleLock = (*RedisCycleLock)(nil)
