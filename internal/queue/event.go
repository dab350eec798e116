// Package queue defines message payloads exchanged over the message broker
// and the background consumer processing them.
package queue

// Item mutation actions carried in ClosetChangedEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ClosetChangedEvent is published whenever a user's wardrobe changes. Its
// primary consumer drops that user's cached API responses so the next read
// reflects the mutation immediately instead of waiting out the cache TTL.
type ClosetChangedEvent struct {
	UserID     uint64 `json:"user_id"`
	ItemID     uint64 `json:"item_id"`
	Action     string `json:"action"`
	OccurredAt string `json:"occurred_at"`
}
