package events

import (
	"sync"
	"testing"
	"time"

	"github.com/huynhanx03/gamekit/pkg/inventory"
	"github.com/huynhanx03/gamekit/pkg/settings"
)

// sink collects consumed events.
type sink struct {
	mu     sync.Mutex
	events []Event
}

func (s *sink) Consume(batch []Event) error {
	s.mu.Lock()
	s.events = append(s.events, batch...)
	s.mu.Unlock()
	return nil
}

func (s *sink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

// =============================================================================
// Method: Record()
// =============================================================================

func TestDispatcher_DeliversEvents(t *testing.T) {
	s := &sink{}
	d := NewDispatcher(s, &settings.Events{QueueCapacity: 64, StripeSize: 4}, nil)
	defer d.Close()

	item := inventory.Item{ID: 7, Name: "sword", Kind: inventory.KindWeapon, Count: 1}
	for i := 0; i < 8; i++ {
		d.Record(1, inventory.ActionCollect, item)
	}

	waitFor(t, time.Second, func() bool { return s.count() >= 8 })

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ev := range s.events {
		if ev.SessionID != 1 {
			t.Errorf("events[%d].SessionID = %d; want 1", i, ev.SessionID)
		}
		if ev.Action != inventory.ActionCollect {
			t.Errorf("events[%d].Action = %s; want collect", i, ev.Action)
		}
		if ev.Item.ID != 7 {
			t.Errorf("events[%d].Item.ID = %d; want 7", i, ev.Item.ID)
		}
		if ev.At.IsZero() {
			t.Errorf("events[%d].At is zero", i)
		}
	}
}

func TestDispatcher_CloseFlushesQueuedEvents(t *testing.T) {
	s := &sink{}
	// Stripe of 1 so every event flushes immediately once drained.
	d := NewDispatcher(s, &settings.Events{QueueCapacity: 256, StripeSize: 1}, nil)

	item := inventory.Item{ID: 1, Name: "key", Kind: inventory.KindKey, Count: 1}
	const n = 50
	for i := 0; i < n; i++ {
		d.Record(int64(i), inventory.ActionCollect, item)
	}

	d.Close()

	if got := s.count(); got != n {
		t.Errorf("consumed %d events after Close; want %d", got, n)
	}
	if d.Dropped() != 0 {
		t.Errorf("Dropped() = %d; want 0", d.Dropped())
	}
}

func TestDispatcher_KeyIsStablePerSession(t *testing.T) {
	a := Event{SessionID: 1234}
	b := Event{SessionID: 1234}
	c := Event{SessionID: 5678}

	if a.Key() != b.Key() {
		t.Error("events of one session should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("events of different sessions should have different keys")
	}
}
