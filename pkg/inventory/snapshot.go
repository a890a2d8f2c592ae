package inventory

import "time"

// Snapshot is the serializable state of an inventory, stored by the
// snapshot store and restored on session resume.
type Snapshot struct {
	SessionID int64     `json:"session_id"`
	Items     []Item    `json:"items"`
	TakenAt   time.Time `json:"taken_at"`
}

// Snapshot captures the current items in pickup order.
func (inv *Inventory) Snapshot() Snapshot {
	return Snapshot{
		SessionID: inv.sessionID,
		Items:     inv.items.ToSlice(),
		TakenAt:   time.Now(),
	}
}

// Restore replaces the inventory contents with the snapshot's items,
// preserving their order. The snapshot's session ID is ignored; the
// inventory keeps its own.
func (inv *Inventory) Restore(s Snapshot) {
	inv.items.Clear()
	for _, item := range s.Items {
		inv.items.Enqueue(item)
	}
}
