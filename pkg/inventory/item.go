package inventory

import (
	"github.com/huynhanx03/gamekit/pkg/encoding"
)

// Kind classifies what an item does when used.
type Kind string

const (
	KindWeapon     Kind = "weapon"
	KindConsumable Kind = "consumable"
	KindKey        Kind = "key"
	KindMisc       Kind = "misc"
)

// Item is one collectible carried by an inventory.
// Items are referenced, not owned: removing one from an inventory does
// not destroy it for other holders.
type Item struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Count int    `json:"count"`
}

// Ref returns the compact base62 form of the item ID, used in logs and API payloads.
func (i Item) Ref() string {
	return encoding.Base62Encode(i.ID)
}

// IsZero reports whether the item is the empty placeholder.
func (i Item) IsZero() bool {
	return i.ID == 0 && i.Name == ""
}
