// Package cache provides the in-memory TTL cache shared by the upstream clients.
//
// Entries carry their insertion time and the TTL is supplied by the caller on
// every lookup, so the same entry can be read under different freshness rules.
// Expiry is lazy: an entry older than the TTL is deleted when it is looked up and
// reported as a miss. There is no background janitor and no capacity bound; the
// keyspace is bounded by the variety of place and state names users type.
package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/tripmate-api/app/observability/metrics"
)

const keySeparator = "::"

// Entry is a cached value plus the moment it was written.
type Entry struct {
	Value      any
	InsertedAt time.Time
}

// Cache is a namespaced key-value store safe for concurrent use.
type Cache struct {
	store *gocache.Cache
	now   func() time.Time
}

type Option func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{
		// cleanup interval 0 disables the go-cache janitor
		store: gocache.New(gocache.NoExpiration, 0),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeKey lowercases and trims a lookup key.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func storeKey(namespace, key string) string {
	return namespace + keySeparator + NormalizeKey(key)
}

// Get returns the value stored under namespace/key if it is younger than ttl.
func (c *Cache) Get(namespace, key string, ttl time.Duration) (any, bool) {
	k := storeKey(namespace, key)
	raw, found := c.store.Get(k)
	if !found {
		recordLookup(namespace, "miss")
		return nil, false
	}
	entry, ok := raw.(Entry)
	if !ok {
		c.store.Delete(k)
		recordLookup(namespace, "miss")
		return nil, false
	}
	if c.now().Sub(entry.InsertedAt) > ttl {
		c.store.Delete(k)
		recordLookup(namespace, "expired")
		return nil, false
	}
	recordLookup(namespace, "hit")
	return entry.Value, true
}

// Set replaces whatever is stored under namespace/key.
func (c *Cache) Set(namespace, key string, value any) {
	c.store.Set(storeKey(namespace, key), Entry{Value: value, InsertedAt: c.now()}, gocache.NoExpiration)
}

// Delete drops namespace/key if present.
func (c *Cache) Delete(namespace, key string) {
	c.store.Delete(storeKey(namespace, key))
}

// Len counts the entries currently held for namespace, expired or not.
func (c *Cache) Len(namespace string) int {
	prefix := namespace + keySeparator
	n := 0
	for k := range c.store.Items() {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n
}

// Flush empties every namespace.
func (c *Cache) Flush() {
	c.store.Flush()
}

func recordLookup(namespace, result string) {
	metrics.Get().CacheLookupsTotal.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("namespace", namespace),
		attribute.String("result", result),
	))
}
