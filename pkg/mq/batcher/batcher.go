package batcher

import (
	"sync"
)

const defaultStripeSize = 512

// StripedBatcher groups items into per-P stripe buffers via sync.Pool,
// so concurrent producers rarely contend. A stripe flushes to the
// Consumer when it fills.
//
// The design is lossy on shutdown: items sitting in pooled stripes are
// not guaranteed to flush. Use it for activity feeds, metrics, or cache
// events where throughput matters more than absolute completeness.
type StripedBatcher[T any] struct {
	pool *sync.Pool
}

// New creates a new StripedBatcher for type T.
func New[T any](cons Consumer[T], cfg Config) *StripedBatcher[T] {
	if cfg.StripeSize <= 0 {
		cfg.StripeSize = defaultStripeSize
	}

	return &StripedBatcher[T]{
		pool: &sync.Pool{
			New: func() any {
				return newStripe[T](cons, cfg.StripeSize)
			},
		},
	}
}

// Push adds an item to the batcher.
// It may trigger a flush to the Consumer if the stripe becomes full.
func (b *StripedBatcher[T]) Push(item T) {
	// The pool hands back a buffer associated with the current P,
	// so the stripe is owned exclusively between Get and Put.
	s := b.pool.Get().(*stripe[T])
	s.Push(item)
	b.pool.Put(s)
}
