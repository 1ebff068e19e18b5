package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCycleLock_Acquire(t *testing.T) {
	lock := NewInMemoryCycleLock()
	defer lock.Close()
	ctx := context.Background()

	t.Run("acquires a free lock", func(t *testing.T) {
		ok, err := lock.Acquire(ctx, "billing:cycle:a", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("refuses a held lock", func(t *testing.T) {
		ok, err := lock.Acquire(ctx, "billing:cycle:a", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("independent keys do not contend", func(t *testing.T) {
		ok, err := lock.Acquire(ctx, "billing:cycle:b", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("release frees the lock", func(t *testing.T) {
		require.NoError(t, lock.Release(ctx, "billing:cycle:a"))
		ok, err := lock.Acquire(ctx, "billing:cycle:a", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInMemoryCycleLock_Expiry(t *testing.T) {
	lock := NewInMemoryCycleLock()
	defer lock.Close()
	ctx := context.Background()

	ok, err := lock.Acquire(ctx, "key", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	// An expired holder no longer blocks a new writer.
	ok, err = lock.Acquire(ctx, "key", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryCycleLock_Concurrent(t *testing.T) {
	lock := NewInMemoryCycleLock()
	defer lock.Close()
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := lock.Acquire(ctx, "contested", time.Minute)
			require.NoError(t, err)
			if ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

func TestInMemoryCycleLock_CloseIsIdempotent(t *testing.T) {
	lock := NewInMemoryCycleLock()
	require.NoError(t, lock.Close())
	require.NoError(t, lock.Close())
}
