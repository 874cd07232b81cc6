package models

import "time"

// MessageTypeLiveUpdate tags live-score refresh messages on the wire.
const MessageTypeLiveUpdate = "live_update"

// LiveUpdate is the WebSocket message pushed to subscribers whenever the
// poller brings back a fresh live-match list.
type LiveUpdate struct {
	Type      string    `json:"type"`
	Message   string    `json:"message,omitempty"`
	Matches   []Match   `json:"matches"`
	UpdatedAt time.Time `json:"updatedAt"`
}
