package model

import "strings"

// Room is a bookable room of the tourism office.  The room number is a
// string whose leading characters encode the building/location (e.g. every
// room in the annex starts with "2"), which is what the schedule view's
// location filter matches against.
type Room struct {
	ID     uint64 `json:"id"`     // rooms.id
	Number string `json:"number"` // rooms.number, prefix encodes location
	Name   string `json:"name"`   // rooms.name, human readable label
}

// InLocation reports whether the room belongs to the location encoded by the
// given number prefix.  An empty prefix matches every room.
func (r Room) InLocation(prefix string) bool {
	return prefix == "" || strings.HasPrefix(r.Number, prefix)
}

// Validate checks the fields required before a room may be saved.
func (r Room) Validate() error {
	if strings.TrimSpace(r.Number) == "" {
		return &ValidationError{Field: "number", Reason: "room number is required"}
	}
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Reason: "room name is required"}
	}
	return nil
}
