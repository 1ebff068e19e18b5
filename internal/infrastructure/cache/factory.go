package cache

import (
	"fmt"

	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/cohaus/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// CycleLockFactory creates cycle locks based on configuration
type CycleLockFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CycleLockFactoryOption is a functional option for configuring the factory
type CycleLockFactoryOption func(*CycleLockFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CycleLockFactoryOption {
	return func(f *CycleLockFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory lock
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) CycleLockFactoryOption {
	return func(f *CycleLockFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCycleLockFactory creates a new factory
func NewCycleLockFactory(cfg config.RedisConfig, opts ...CycleLockFactoryOption) *CycleLockFactory {
	f := &CycleLockFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisLock creates a Redis-based cycle lock
func (f *CycleLockFactory) CreateRedisLock() (shared.CycleLock, error) {
	lock, err := NewRedisCycleLock(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis cycle lock: %w", err)
	}
	return lock, nil
}

// CreateInMemoryLock creates an in-memory cycle lock
func (f *CycleLockFactory) CreateInMemoryLock() shared.CycleLock {
	return NewInMemoryCycleLock()
}

// CreateLock creates a cycle lock based on whether Redis is available.
// It tries Redis first and falls back to the in-memory lock when allowed.
func (f *CycleLockFactory) CreateLock() (shared.CycleLock, error) {
	lock, err := f.CreateRedisLock()
	if err == nil {
		f.logger.Info("using Redis cycle lock")
		return lock, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for cycle locking but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cycle lock. "+
		"Concurrent recomputes are only serialized within this process.",
		zap.Error(err),
	)
	return f.CreateInMemoryLock(), nil
}
