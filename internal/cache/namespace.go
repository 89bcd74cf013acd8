package cache

import "time"

// Namespace names used by the service.
const (
	NamespaceGeo          = "geo"
	NamespaceDestinations = "destinations"
	NamespacePlace        = "place"
)

// Namespace is a typed view of one cache namespace with a fixed TTL.
type Namespace[V any] struct {
	cache *Cache
	name  string
	ttl   time.Duration
}

func NewNamespace[V any](c *Cache, name string, ttl time.Duration) *Namespace[V] {
	return &Namespace[V]{cache: c, name: name, ttl: ttl}
}

func (n *Namespace[V]) Get(key string) (V, bool) {
	var zero V
	raw, ok := n.cache.Get(n.name, key, n.ttl)
	if !ok {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		n.cache.Delete(n.name, key)
		return zero, false
	}
	return v, true
}

func (n *Namespace[V]) Set(key string, value V) {
	n.cache.Set(n.name, key, value)
}

func (n *Namespace[V]) Len() int {
	return n.cache.Len(n.name)
}

func (n *Namespace[V]) Name() string {
	return n.name
}

func (n *Namespace[V]) TTL() time.Duration {
	return n.ttl
}
