package session

import (
	"sync"
	"time"

	"github.com/huynhanx03/gamekit/pkg/encoding"
	"github.com/huynhanx03/gamekit/pkg/inventory"
)

// Session is one player's context. It owns that player's inventory and
// serializes access to it, so callers never touch the inventory directly.
type Session struct {
	id        int64
	createdAt time.Time

	mu  sync.Mutex
	inv *inventory.Inventory
}

// ID returns the session's snowflake ID.
func (s *Session) ID() int64 { return s.id }

// Ref returns the compact base62 form of the session ID.
func (s *Session) Ref() string { return encoding.Base62Encode(s.id) }

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Collect picks up an item into the session's inventory.
func (s *Session) Collect(item inventory.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inv.Collect(item)
}

// CycleNext rotates the main item to the tail. See inventory.CycleNext.
func (s *Session) CycleNext() (inventory.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.CycleNext()
}

// Drop removes and returns the main item.
func (s *Session) Drop() (inventory.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.Drop()
}

// Slots returns the current two-slot inventory view.
func (s *Session) Slots() inventory.Slots {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.Slots()
}

// Count returns the number of held items.
func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.Count()
}

// Snapshot captures the inventory state for persistence.
func (s *Session) Snapshot() inventory.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.Snapshot()
}

// Restore replaces the inventory contents from a snapshot.
func (s *Session) Restore(snap inventory.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inv.Restore(snap)
}
