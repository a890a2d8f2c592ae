package queue

import (
	"testing"
)

// =============================================================================
// Method: NewRing()
// =============================================================================

func TestRing_NewRing(t *testing.T) {
	tests := []struct {
		name    string
		cap     int
		wantCap int
	}{
		{"default_minimum", 4, 4},
		{"round_up_to_power_of_two", 5, 8},
		{"zero_clamps_to_minimum", 0, 4},
		{"negative_clamps_to_minimum", -7, 4},
		{"one_clamps_to_minimum", 1, 4},
		{"exact_power_of_two", 16, 16},
		{"round_up_large", 100, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewRing[int](tt.cap)
			if q.Cap() != tt.wantCap {
				t.Errorf("NewRing(%d) Cap = %d; want %d", tt.cap, q.Cap(), tt.wantCap)
			}
			if q.Len() != 0 {
				t.Errorf("NewRing(%d) Len = %d; want 0", tt.cap, q.Len())
			}
			if !q.IsEmpty() {
				t.Error("new queue should be empty")
			}
		})
	}
}

// =============================================================================
// Method: Enqueue() / ToSlice()
// =============================================================================

func TestRing_EnqueuePreservesInsertionOrder(t *testing.T) {
	tests := []struct {
		name  string
		cap   int
		items []int
	}{
		{"single", 4, []int{42}},
		{"several_within_capacity", 8, []int{1, 2, 3, 4, 5}},
		{"fill_to_capacity", 4, []int{10, 20, 30, 40}},
		{"zero_values_are_live_elements", 4, []int{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewRing[int](tt.cap)
			for _, item := range tt.items {
				q.Enqueue(item)
			}
			if q.Len() != len(tt.items) {
				t.Errorf("Len() = %d; want %d", q.Len(), len(tt.items))
			}
			assertSliceEqual(t, q.ToSlice(), tt.items)
		})
	}
}

func TestRing_ToSliceIsIndependentCopy(t *testing.T) {
	q := NewRing[int](4)
	q.Enqueue(1)
	q.Enqueue(2)

	snapshot := q.ToSlice()
	snapshot[0] = 99

	head, err := q.Peek()
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if head != 1 {
		t.Errorf("queue head = %d after mutating snapshot; want 1", head)
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d after ToSlice; want 2", q.Len())
	}
}

// =============================================================================
// Method: Dequeue()
// =============================================================================

func TestRing_DequeueEmpty(t *testing.T) {
	q := NewRing[string](4)

	_, err := q.Dequeue()
	if err != ErrEmpty {
		t.Errorf("Dequeue() error = %v; want ErrEmpty", err)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d after failed Dequeue; want 0", q.Len())
	}
}

func TestRing_DequeueStrictFIFO(t *testing.T) {
	q := NewRing[int](4)
	in := []int{7, 8, 9}
	for _, v := range in {
		q.Enqueue(v)
	}

	for i, want := range in {
		got, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue() #%d error = %v", i, err)
		}
		if got != want {
			t.Errorf("Dequeue() #%d = %d; want %d", i, got, want)
		}
	}
	if !q.IsEmpty() {
		t.Error("queue should be empty after draining")
	}
}

func TestRing_DequeueClearsSlotReference(t *testing.T) {
	type payload struct{ id int }

	q := NewRing[*payload](4)
	q.Enqueue(&payload{id: 1})
	q.Enqueue(&payload{id: 2})
	q.Enqueue(&payload{id: 3})

	// Drain all but one; no stale entries may remain visible.
	if _, err := q.Dequeue(); err != nil {
		t.Fatalf("Dequeue() error = %v", err)
	}
	if _, err := q.Dequeue(); err != nil {
		t.Fatalf("Dequeue() error = %v", err)
	}

	snapshot := q.ToSlice()
	if len(snapshot) != 1 {
		t.Fatalf("ToSlice() length = %d; want 1", len(snapshot))
	}
	if snapshot[0].id != 3 {
		t.Errorf("remaining item id = %d; want 3", snapshot[0].id)
	}

	// Vacated slots in the internal buffer must be nil.
	for i, p := range q.items {
		if p != nil && i != q.head {
			t.Errorf("slot %d retains reference after dequeue", i)
		}
	}
}

func TestRing_InterleavedEnqueueDequeue(t *testing.T) {
	q := NewRing[int](4)

	q.Enqueue(10)
	q.Enqueue(20)
	q.Enqueue(30)

	got, err := q.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue() error = %v", err)
	}
	if got != 10 {
		t.Errorf("Dequeue() = %d; want 10", got)
	}

	q.Enqueue(40)
	assertSliceEqual(t, q.ToSlice(), []int{20, 30, 40})
	if q.Len() != 3 {
		t.Errorf("Len() = %d; want 3", q.Len())
	}
}

// =============================================================================
// Growth
// =============================================================================

func TestRing_GrowthPreservesOrder(t *testing.T) {
	q := NewRing[int](4)
	initialCap := q.Cap()

	in := make([]int, 0, 10)
	for i := 1; i <= 10; i++ {
		q.Enqueue(i)
		in = append(in, i)
	}

	if q.Cap() <= initialCap {
		t.Errorf("Cap() = %d; want > %d after growth", q.Cap(), initialCap)
	}
	if q.Len() != 10 {
		t.Errorf("Len() = %d; want 10", q.Len())
	}
	assertSliceEqual(t, q.ToSlice(), in)
}

func TestRing_GrowthWithWrappedHead(t *testing.T) {
	q := NewRing[int](4)

	// Advance head so live elements wrap the buffer end before growing.
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)
	if _, err := q.Dequeue(); err != nil {
		t.Fatalf("Dequeue() error = %v", err)
	}
	if _, err := q.Dequeue(); err != nil {
		t.Fatalf("Dequeue() error = %v", err)
	}
	q.Enqueue(4)
	q.Enqueue(5)
	q.Enqueue(6) // buffer now full with head mid-buffer

	q.Enqueue(7) // triggers growth

	assertSliceEqual(t, q.ToSlice(), []int{3, 4, 5, 6, 7})
	if q.head != 0 {
		t.Errorf("head = %d after growth; want 0", q.head)
	}
	if q.Cap() != 8 {
		t.Errorf("Cap() = %d after growth; want 8", q.Cap())
	}
}

func TestRing_GrowthDoubles(t *testing.T) {
	q := NewRing[int](4)
	for i := 0; i < 5; i++ {
		q.Enqueue(i)
	}
	if q.Cap() != 8 {
		t.Errorf("Cap() = %d; want 8 per doubling strategy", q.Cap())
	}
	for i := 5; i < 9; i++ {
		q.Enqueue(i)
	}
	if q.Cap() != 16 {
		t.Errorf("Cap() = %d; want 16 per doubling strategy", q.Cap())
	}
}

// =============================================================================
// Round trip / no shrink
// =============================================================================

func TestRing_RoundTrip(t *testing.T) {
	const k = 50

	q := NewRing[int](4)
	for i := 0; i < k; i++ {
		q.Enqueue(i)
	}
	capAfterGrowth := q.Cap()

	for i := 0; i < k; i++ {
		got, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue() #%d error = %v", i, err)
		}
		if got != i {
			t.Errorf("Dequeue() #%d = %d; want %d", i, got, i)
		}
	}

	if q.Len() != 0 {
		t.Errorf("Len() = %d after round trip; want 0", q.Len())
	}
	if q.Cap() != capAfterGrowth {
		t.Errorf("Cap() = %d after round trip; want %d (no shrink)", q.Cap(), capAfterGrowth)
	}
}

// =============================================================================
// Method: Peek() / Clear()
// =============================================================================

func TestRing_Peek(t *testing.T) {
	q := NewRing[int](4)

	if _, err := q.Peek(); err != ErrEmpty {
		t.Errorf("Peek() on empty error = %v; want ErrEmpty", err)
	}

	q.Enqueue(11)
	q.Enqueue(22)

	got, err := q.Peek()
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if got != 11 {
		t.Errorf("Peek() = %d; want 11", got)
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d after Peek; want 2", q.Len())
	}
}

func TestRing_Clear(t *testing.T) {
	q := NewRing[*int](4)
	v := 5
	q.Enqueue(&v)
	q.Enqueue(&v)

	q.Clear()

	if q.Len() != 0 {
		t.Errorf("Len() = %d after Clear; want 0", q.Len())
	}
	if q.Cap() != 4 {
		t.Errorf("Cap() = %d after Clear; want 4", q.Cap())
	}
	for i, p := range q.items {
		if p != nil {
			t.Errorf("slot %d retains reference after Clear", i)
		}
	}

	// Queue stays usable after Clear.
	q.Enqueue(&v)
	if q.Len() != 1 {
		t.Errorf("Len() = %d after reuse; want 1", q.Len())
	}
}

// =============================================================================
// Helpers
// =============================================================================

func assertSliceEqual(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ToSlice() length = %d; want %d (got %v, want %v)", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToSlice()[%d] = %d; want %d (got %v, want %v)", i, got[i], want[i], got, want)
		}
	}
}
