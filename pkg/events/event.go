package events

import (
	"time"

	"github.com/huynhanx03/gamekit/pkg/encoding"
	"github.com/huynhanx03/gamekit/pkg/inventory"
)

// Event is one inventory activity record flowing through the pipeline.
type Event struct {
	SessionID int64            `json:"session_id"`
	Action    inventory.Action `json:"action"`
	Item      inventory.Item   `json:"item"`
	At        time.Time        `json:"at"`
}

// Key returns the partitioning key; events of one session stay ordered.
func (e Event) Key() string {
	return encoding.Base62Encode(e.SessionID)
}
