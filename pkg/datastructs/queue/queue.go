package queue

// Bounded is the contract shared by fixed-capacity FIFO queues.
type Bounded[T any] interface {
	// Enqueue adds an item to the queue.
	// Returns true if successful, false if the queue is full.
	Enqueue(item T) bool

	// Dequeue removes and returns an item from the queue.
	// Returns (item, true) if successful, (zero, false) if the queue is empty.
	Dequeue() (T, bool)

	// Len returns the current number of items in the queue.
	Len() int

	// Cap returns the total capacity of the queue.
	Cap() int
}
