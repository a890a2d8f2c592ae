package batcher

// stripe is a single buffer. It is not thread-safe and is only used
// between a pool Get and Put.
type stripe[T any] struct {
	cons Consumer[T]
	data []T
	cap  int
}

func newStripe[T any](cons Consumer[T], capacity int) *stripe[T] {
	return &stripe[T]{
		cons: cons,
		data: make([]T, 0, capacity),
		cap:  capacity,
	}
}

// Push appends an item. A full stripe flushes to the consumer and
// hands off its backing slice, so the consumer owns the batch safely.
func (s *stripe[T]) Push(item T) {
	s.data = append(s.data, item)

	if len(s.data) >= s.cap {
		// Fire-and-forget: error handling belongs to the Consumer.
		_ = s.cons.Consume(s.data)
		s.data = make([]T, 0, s.cap)
	}
}
