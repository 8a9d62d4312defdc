package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetReturnsStoredPayloadWithinTTL(t *testing.T) {
	clock := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	c := New(3 * time.Minute)
	c.now = func() time.Time { return clock }

	c.Set("open-meteo:-12.9437,-38.3539", "payload")

	clock = clock.Add(2 * time.Minute)
	got, ok := c.Get("open-meteo:-12.9437,-38.3539")
	require.True(t, ok)
	require.Equal(t, "payload", got)
}

func TestGetAtExactTTLBoundaryIsStillFresh(t *testing.T) {
	clock := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	c := New(3 * time.Minute)
	c.now = func() time.Time { return clock }

	c.Set("k", 42)

	// Age == TTL is not yet expired; only age > TTL is.
	clock = clock.Add(3 * time.Minute)
	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 42, got)
}

func TestGetPurgesExpiredEntry(t *testing.T) {
	clock := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	c := New(3 * time.Minute)
	c.now = func() time.Time { return clock }

	c.Set("k", "stale")

	clock = clock.Add(3*time.Minute + time.Second)
	_, ok := c.Get("k")
	require.False(t, ok)

	// The entry is gone, not merely hidden: even if the clock rolled back,
	// a second lookup would not see the old payload.
	c.mu.Lock()
	_, present := c.entries["k"]
	c.mu.Unlock()
	require.False(t, present)
}

func TestGetUnknownKey(t *testing.T) {
	c := New(time.Minute)
	_, ok := c.Get("never-set")
	require.False(t, ok)
}

func TestSetOverwrites(t *testing.T) {
	clock := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	c := New(3 * time.Minute)
	c.now = func() time.Time { return clock }

	c.Set("k", "old")
	clock = clock.Add(2 * time.Minute)
	c.Set("k", "new")

	// The overwrite refreshed the insertion time as well.
	clock = clock.Add(2 * time.Minute)
	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "new", got)
}

func TestConcurrentAccessDifferentKeys(t *testing.T) {
	c := New(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			c.Set(key, n)
			got, ok := c.Get(key)
			if !ok || got != n {
				t.Errorf("key %s: got %v ok=%v", key, got, ok)
			}
		}(i)
	}
	wg.Wait()
}
