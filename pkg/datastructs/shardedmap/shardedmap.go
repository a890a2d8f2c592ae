package shardedmap

import (
	"sync"

	"github.com/huynhanx03/gamekit/pkg/utils"
)

// Map is a thread-safe map that uses sharding to minimize lock contention.
// It supports any comparable key type K and any value type V.
type Map[K comparable, V any] struct {
	shards []*lockedShard[K, V]
	mask   uint64
	hasher func(K) uint64
}

type lockedShard[K comparable, V any] struct {
	sync.RWMutex
	data map[K]V

	// Padding keeps each shard on its own cache line to avoid false sharing.
	pad [64]byte
}

// New creates a new sharded map.
// shards: number of shards, rounded up to the nearest power of 2.
// hashFn: function hashing the key K into a uint64.
func New[K comparable, V any](shards int, hashFn func(K) uint64) *Map[K, V] {
	if shards <= 0 {
		shards = 256
	}
	numShards := utils.CeilToPowerOfTwo(shards)
	m := &Map[K, V]{
		shards: make([]*lockedShard[K, V], numShards),
		mask:   uint64(numShards - 1),
		hasher: hashFn,
	}

	for i := range m.shards {
		m.shards[i] = &lockedShard[K, V]{
			data: make(map[K]V),
		}
	}
	return m
}

func (m *Map[K, V]) shardFor(key K) *lockedShard[K, V] {
	return m.shards[m.hasher(key)&m.mask]
}

// Get retrieves a value from the map.
func (m *Map[K, V]) Get(key K) (V, bool) {
	shard := m.shardFor(key)

	shard.RLock()
	val, ok := shard.data[key]
	shard.RUnlock()
	return val, ok
}

// Set adds or updates a value in the map.
func (m *Map[K, V]) Set(key K, value V) {
	shard := m.shardFor(key)

	shard.Lock()
	shard.data[key] = value
	shard.Unlock()
}

// GetOrSet returns the existing value for key if present; otherwise it
// stores and returns value. loaded is true if the value was already present.
func (m *Map[K, V]) GetOrSet(key K, value V) (actual V, loaded bool) {
	shard := m.shardFor(key)

	shard.Lock()
	if existing, ok := shard.data[key]; ok {
		shard.Unlock()
		return existing, true
	}
	shard.data[key] = value
	shard.Unlock()
	return value, false
}

// Del removes a value from the map.
func (m *Map[K, V]) Del(key K) {
	shard := m.shardFor(key)

	shard.Lock()
	delete(shard.data, key)
	shard.Unlock()
}

// Len returns the total number of items in the map.
// Shards are locked one at a time, so the count is not atomic across the map.
func (m *Map[K, V]) Len() int {
	total := 0
	for _, shard := range m.shards {
		shard.RLock()
		total += len(shard.data)
		shard.RUnlock()
	}
	return total
}

// Clear removes all items from the map.
func (m *Map[K, V]) Clear() {
	for _, shard := range m.shards {
		shard.Lock()
		shard.data = make(map[K]V)
		shard.Unlock()
	}
}

// Do iterates over all items in the map and executes fn.
// It locks one shard at a time.
func (m *Map[K, V]) Do(fn func(K, V)) {
	for _, shard := range m.shards {
		shard.RLock()
		for k, v := range shard.data {
			fn(k, v)
		}
		shard.RUnlock()
	}
}
