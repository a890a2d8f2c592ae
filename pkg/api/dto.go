package api

import "github.com/huynhanx03/gamekit/pkg/inventory"

// SessionRequest addresses an existing session by its base62 ref.
type SessionRequest struct {
	SessionRef string `json:"session_ref" validate:"required"`
}

// CollectRequest adds one item to a session's inventory.
type CollectRequest struct {
	SessionRef string `json:"session_ref" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Kind       string `json:"kind" validate:"required,oneof=weapon consumable key misc"`
	Count      int    `json:"count" validate:"omitempty,min=1"`
}

// SessionResponse describes a session and its current slot view.
type SessionResponse struct {
	SessionRef string          `json:"session_ref"`
	Slots      inventory.Slots `json:"slots"`
}

// CycleResponse reports the main item after a rotation.
type CycleResponse struct {
	Rotated bool            `json:"rotated"`
	Main    inventory.Item  `json:"main"`
	Slots   inventory.Slots `json:"slots"`
}

// DropResponse reports the item removed from the main slot.
type DropResponse struct {
	Dropped inventory.Item  `json:"dropped"`
	Slots   inventory.Slots `json:"slots"`
}

// EndResponse reports the final item count of an ended session.
type EndResponse struct {
	SessionRef string `json:"session_ref"`
	Items      int    `json:"items"`
}
