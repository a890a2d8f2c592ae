package batcher

// Consumer processes batches handed off by a batcher.
type Consumer[T any] interface {
	// Consume processes a batch of items.
	// Returns an error if processing fails.
	Consume(batch []T) error
}

// Config holds configuration for the StripedBatcher.
type Config struct {
	// StripeSize is the capacity of a single stripe buffer.
	// When a stripe reaches this size, it is flushed to the Consumer.
	StripeSize int
}
