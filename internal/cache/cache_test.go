package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache() (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return New(WithClock(clock.Now)), clock
}

func TestCache_RoundTripIsCaseInsensitive(t *testing.T) {
	c, _ := newTestCache()

	c.Set(NamespaceDestinations, "Arizona", []string{"Sedona"})

	v, ok := c.Get(NamespaceDestinations, "arizona", time.Hour)
	require.True(t, ok)
	assert.Equal(t, []string{"Sedona"}, v)

	v, ok = c.Get(NamespaceDestinations, "  ARIZONA ", time.Hour)
	require.True(t, ok)
	assert.Equal(t, []string{"Sedona"}, v)
}

func TestCache_ExpiredEntryIsEvictedOnLookup(t *testing.T) {
	c, clock := newTestCache()

	c.Set(NamespaceDestinations, "Arizona", "v")
	clock.Advance(59 * time.Minute)
	_, ok := c.Get(NamespaceDestinations, "arizona", time.Hour)
	require.True(t, ok)
	assert.Equal(t, 1, c.Len(NamespaceDestinations))

	clock.Advance(2 * time.Minute)
	_, ok = c.Get(NamespaceDestinations, "arizona", time.Hour)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(NamespaceDestinations), "expired entry should be removed")
}

func TestCache_TTLIsSuppliedPerLookup(t *testing.T) {
	c, clock := newTestCache()

	c.Set(NamespaceGeo, "sedona", 1)
	clock.Advance(2 * time.Hour)

	_, ok := c.Get(NamespaceGeo, "sedona", 24*time.Hour)
	assert.True(t, ok)
	_, ok = c.Get(NamespaceGeo, "sedona", time.Hour)
	assert.False(t, ok)
}

func TestCache_NamespacesAreIndependent(t *testing.T) {
	c, _ := newTestCache()

	c.Set(NamespaceGeo, "arizona", "geo")
	c.Set(NamespacePlace, "arizona", "place")

	v, ok := c.Get(NamespaceGeo, "arizona", time.Hour)
	require.True(t, ok)
	assert.Equal(t, "geo", v)

	v, ok = c.Get(NamespacePlace, "arizona", time.Hour)
	require.True(t, ok)
	assert.Equal(t, "place", v)

	_, ok = c.Get(NamespaceDestinations, "arizona", time.Hour)
	assert.False(t, ok)
}

func TestCache_SetReplacesWholesale(t *testing.T) {
	c, clock := newTestCache()

	c.Set(NamespacePlace, "sedona", "old")
	clock.Advance(30 * time.Minute)
	c.Set(NamespacePlace, "Sedona", "new")
	clock.Advance(45 * time.Minute)

	// the rewrite resets the insertion time
	v, ok := c.Get(NamespacePlace, "sedona", time.Hour)
	require.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, c.Len(NamespacePlace))
}

func TestNamespace_Typed(t *testing.T) {
	c, clock := newTestCache()
	ns := NewNamespace[[]string](c, NamespaceDestinations, time.Hour)

	ns.Set("Utah", []string{"Arches", "Zion"})
	got, ok := ns.Get("utah")
	require.True(t, ok)
	assert.Equal(t, []string{"Arches", "Zion"}, got)
	assert.Equal(t, time.Hour, ns.TTL())
	assert.Equal(t, NamespaceDestinations, ns.Name())

	clock.Advance(time.Hour + time.Second)
	_, ok = ns.Get("utah")
	assert.False(t, ok)
	assert.Equal(t, 0, ns.Len())
}

func TestNamespace_WrongTypeIsAMiss(t *testing.T) {
	c, _ := newTestCache()
	c.Set(NamespaceGeo, "x", "not a number")

	ns := NewNamespace[int](c, NamespaceGeo, time.Hour)
	_, ok := ns.Get("x")
	assert.False(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", j%10)
				c.Set(NamespaceGeo, key, i)
				c.Get(NamespaceGeo, key, time.Minute)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, c.Len(NamespaceGeo))
}
