package queue

import (
	"errors"

	"github.com/huynhanx03/gamekit/pkg/utils"
)

// minRingCapacity is the floor for requested capacities. Non-positive
// requests are clamped here rather than rejected, so construction never fails.
const minRingCapacity = 4

// ErrEmpty is returned when trying to take from an empty queue.
var ErrEmpty = errors.New("ring queue is empty")

// Ring is a growable circular FIFO queue for a single goroutine.
// Capacity is kept at a power of two so positions wrap with a mask.
// When an enqueue would overflow, the buffer doubles: live items are
// copied out in FIFO order into the fresh buffer and head resets to 0.
// The buffer never shrinks.
//
// Ring is not safe for concurrent use; owners sharing one across
// goroutines must serialize access themselves.
type Ring[T any] struct {
	items []T
	head  int // index of the oldest live item
	count int // number of live items
	mask  int // len(items) - 1, for fast modulo
}

// NewRing creates an empty ring queue.
// capacity is rounded up to the nearest power of two; values below the
// minimum (including zero and negatives) are clamped to it.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < minRingCapacity {
		capacity = minRingCapacity
	}
	capacity = utils.CeilToPowerOfTwo(capacity)

	return &Ring[T]{
		items: make([]T, capacity),
		mask:  capacity - 1,
	}
}

// Enqueue inserts an item at the logical tail. It always succeeds,
// growing the buffer first if the queue is full.
func (q *Ring[T]) Enqueue(item T) {
	if q.count == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.count)&q.mask] = item
	q.count++
}

// Dequeue removes and returns the logical head item.
// Returns ErrEmpty if the queue is empty. The vacated slot is cleared
// to the zero value so the queue releases its reference to the item.
func (q *Ring[T]) Dequeue() (T, error) {
	var zero T
	if q.count == 0 {
		return zero, ErrEmpty
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) & q.mask
	q.count--
	return item, nil
}

// Peek returns the logical head item without removing it.
// Returns ErrEmpty if the queue is empty.
func (q *Ring[T]) Peek() (T, error) {
	var zero T
	if q.count == 0 {
		return zero, ErrEmpty
	}
	return q.items[q.head], nil
}

// Len returns the current number of live items.
func (q *Ring[T]) Len() int { return q.count }

// Cap returns the number of allocated slots.
func (q *Ring[T]) Cap() int { return len(q.items) }

// IsEmpty returns true if the queue holds no items.
func (q *Ring[T]) IsEmpty() bool { return q.count == 0 }

// IsFull returns true if the next enqueue would trigger growth.
func (q *Ring[T]) IsFull() bool { return q.count == len(q.items) }

// ToSlice returns a copy of the live items in FIFO order (head to tail).
// The result shares no storage with the queue.
func (q *Ring[T]) ToSlice() []T {
	out := make([]T, q.count)
	for i := 0; i < q.count; i++ {
		out[i] = q.items[(q.head+i)&q.mask]
	}
	return out
}

// Clear removes all items, zeroing live slots to release references.
// Capacity is retained.
func (q *Ring[T]) Clear() {
	var zero T
	for i := 0; i < q.count; i++ {
		q.items[(q.head+i)&q.mask] = zero
	}
	q.head = 0
	q.count = 0
}

// grow doubles the buffer, unwinding the ring: live items are copied
// in FIFO order to positions 0..count-1 of the new buffer.
func (q *Ring[T]) grow() {
	newItems := make([]T, len(q.items)*2)
	for i := 0; i < q.count; i++ {
		newItems[i] = q.items[(q.head+i)&q.mask]
	}
	q.items = newItems
	q.head = 0
	q.mask = len(newItems) - 1
}
