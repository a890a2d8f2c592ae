package inventory

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/gamekit/pkg/datastructs/queue"
)

// DefaultCapacity is the initial queue capacity when none is configured.
const DefaultCapacity = 4

// Action names inventory activity for recorders.
type Action string

const (
	ActionCollect Action = "collect"
	ActionCycle   Action = "cycle"
	ActionDrop    Action = "drop"
)

// Recorder receives inventory activity. Transports (event pipelines,
// metrics) implement this; the inventory itself stays transport-free.
type Recorder interface {
	Record(sessionID int64, action Action, item Item)
}

// Inventory holds one player's collected items in pickup order.
// The head of the queue is the equipped "main" item; cycling moves it
// to the tail. Each inventory owns its queue; there is no shared state.
//
// Inventory is not safe for concurrent use. A session serializes access.
type Inventory struct {
	sessionID int64
	items     *queue.Ring[Item]
	log       *zap.Logger
	rec       Recorder
}

// Option configures an Inventory.
type Option func(*Inventory)

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(inv *Inventory) { inv.log = log }
}

// WithRecorder attaches an activity recorder.
func WithRecorder(rec Recorder) Option {
	return func(inv *Inventory) { inv.rec = rec }
}

// New creates an empty inventory for a session.
// capacity below the minimum is clamped by the queue.
func New(sessionID int64, capacity int, opts ...Option) *Inventory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	inv := &Inventory{
		sessionID: sessionID,
		items:     queue.NewRing[Item](capacity),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Collect adds a picked-up item at the tail. It always succeeds.
func (inv *Inventory) Collect(item Item) {
	inv.items.Enqueue(item)

	inv.log.Debug("item collected",
		zap.Int64("session_id", inv.sessionID),
		zap.String("item", item.Ref()),
		zap.String("kind", string(item.Kind)),
		zap.Int("count", inv.items.Len()),
	)
	inv.record(ActionCollect, item)
}

// CycleNext moves the current main item to the tail and returns the new
// main item. It is a no-op returning false when fewer than two items
// are held, so a lone item can never cycle away from the main slot.
func (inv *Inventory) CycleNext() (Item, bool) {
	if inv.items.Len() < 2 {
		return Item{}, false
	}

	prev, err := inv.items.Dequeue()
	if err != nil {
		// unreachable: length was checked above
		return Item{}, false
	}
	inv.items.Enqueue(prev)

	next, _ := inv.items.Peek()
	inv.log.Debug("inventory cycled",
		zap.Int64("session_id", inv.sessionID),
		zap.String("main", next.Ref()),
	)
	inv.record(ActionCycle, next)
	return next, true
}

// Drop removes and returns the main item.
// Returns queue.ErrEmpty (wrapped) when the inventory is empty.
func (inv *Inventory) Drop() (Item, error) {
	item, err := inv.items.Dequeue()
	if err != nil {
		return Item{}, errors.Wrap(err, "drop item")
	}

	inv.log.Debug("item dropped",
		zap.Int64("session_id", inv.sessionID),
		zap.String("item", item.Ref()),
	)
	inv.record(ActionDrop, item)
	return item, nil
}

// Slots is the two-slot render view: Main is the equipped item, Sub the
// next one in line.
type Slots struct {
	Main    Item `json:"main"`
	Sub     Item `json:"sub"`
	HasMain bool `json:"has_main"`
	HasSub  bool `json:"has_sub"`
	Total   int  `json:"total"`
}

// Slots returns the current two-slot view from an independent snapshot.
func (inv *Inventory) Slots() Slots {
	items := inv.items.ToSlice()

	s := Slots{Total: len(items)}
	if len(items) > 0 {
		s.Main = items[0]
		s.HasMain = true
	}
	if len(items) > 1 {
		s.Sub = items[1]
		s.HasSub = true
	}
	return s
}

// Count returns the number of held items.
func (inv *Inventory) Count() int {
	return inv.items.Len()
}

// Items returns all held items in pickup order, independent of internal storage.
func (inv *Inventory) Items() []Item {
	return inv.items.ToSlice()
}

// SessionID returns the owning session's ID.
func (inv *Inventory) SessionID() int64 {
	return inv.sessionID
}

func (inv *Inventory) record(action Action, item Item) {
	if inv.rec != nil {
		inv.rec.Record(inv.sessionID, action, item)
	}
}
