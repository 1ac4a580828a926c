package model

import "strings"

// Event is a one-off booking of a room on a specific date.  Unlike a class
// it has no recurrence; it occupies [Start, End) on exactly one date.
type Event struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Date      Date      `json:"date"`
	Start     TimeOfDay `json:"start"`
	End       TimeOfDay `json:"end"`
	RoomID    uint64    `json:"room_id"`
	Organizer string    `json:"organizer"`
	Paid      bool      `json:"paid"`
	Public    bool      `json:"public"` // whether the event shows up on the public site
}

// Validate enforces the invariants an event must satisfy before any save.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return &ValidationError{Field: "name", Reason: "event name is required"}
	}
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "event date is required"}
	}
	if e.RoomID == 0 {
		return &ValidationError{Field: "room_id", Reason: "event must be assigned to a room"}
	}
	if e.Start >= e.End {
		return &ValidationError{Field: "start", Reason: "event start must be before its end"}
	}
	return nil
}
