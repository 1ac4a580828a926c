// Package queue defines the audit messages exchanged over the message broker
// and the background consumer that records them.
package queue

// ScheduleChangedEvent is published whenever the scheduling data is mutated:
// a room, class, event or cancellation exception is created, updated or
// deleted, or an event override is confirmed.  It carries enough context for
// downstream consumers to reconstruct who changed what without querying the
// primary database.
type ScheduleChangedEvent struct {
	ID         string `json:"id"`          // uuid of this audit record
	Entity     string `json:"entity"`      // "room" | "class" | "event" | "exception"
	EntityID   uint64 `json:"entity_id"`   // primary key of the touched entity
	Action     string `json:"action"`      // "created" | "updated" | "deleted" | "override_confirmed"
	EntityName string `json:"entity_name"` // display name at the time of the change
	Actor      string `json:"actor"`       // staff username from the session
	Detail     string `json:"detail,omitempty"`
	OccurredAt string `json:"occurred_at"` // RFC3339 UTC
}

// Audit actions.
const (
	ActionCreated           = "created"
	ActionUpdated           = "updated"
	ActionDeleted           = "deleted"
	ActionOverrideConfirmed = "override_confirmed"
)

// Audit entities.
const (
	EntityRoom      = "room"
	EntityClass     = "class"
	EntityEvent     = "event"
	EntityException = "exception"
)
