package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cohaus/backend/internal/domain/shared"
)

// lockEntry records a held lock with its expiration
type lockEntry struct {
	expiresAt time.Time
}

// InMemoryCycleLock implements CycleLock using an in-memory map. Suitable
// for single-instance deployments and testing; it does not protect against
// concurrent writers in other processes.
type InMemoryCycleLock struct {
	mu        sync.Mutex
	entries   map[string]lockEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCycleLock creates a new in-memory cycle lock.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryCycleLock() *InMemoryCycleLock {
	l := &InMemoryCycleLock{
		entries:  make(map[string]lockEntry),
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// Acquire takes the lock if nobody else holds it or the holder's TTL expired
func (l *InMemoryCycleLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, exists := l.entries[key]; exists && time.Now().Before(e.expiresAt) {
		return false, nil
	}

	l.entries[key] = lockEntry{expiresAt: time.Now().Add(ttl)}
	return true, nil
}

// Release frees the lock
func (l *InMemoryCycleLock) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, key)
	return nil
}

// Close stops the cleanup goroutine
func (l *InMemoryCycleLock) Close() error {
	l.closeOnce.Do(func() {
		close(l.stopChan)
		l.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries so the map does not grow
// without bound
func (l *InMemoryCycleLock) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.removeExpired()
		case <-l.stopChan:
			return
		}
	}
}

func (l *InMemoryCycleLock) removeExpired() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, e := range l.entries {
		if now.After(e.expiresAt) {
			delete(l.entries, key)
		}
	}
}

// Ensure InMemoryCycleLock implements CycleLock
var _ shared.CycleLock = (*InMemoryCycleLock)(nil)
