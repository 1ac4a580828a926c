package model

import (
	"strings"
	"time"
)

// SlotWeekday is the day of the week a slot recurs on, using the storage
// convention 0 = Sunday … 6 = Saturday.  This matches Go's time.Weekday
// numbering.  The Monday-first index used by the week view is a different
// type (schedule.DayIndex); converting between the two is only done through
// the named conversion functions in the schedule package, never by ad-hoc
// arithmetic.
type SlotWeekday int

// SlotWeekdayOf returns the storage-convention weekday of a date.
func SlotWeekdayOf(d Date) SlotWeekday {
	return SlotWeekday(d.Weekday())
}

// Weekday converts back to Go's time.Weekday (the two share numbering).
func (w SlotWeekday) Weekday() time.Weekday { return time.Weekday(w) }

// Valid reports whether the weekday is in 0..6.
func (w SlotWeekday) Valid() bool { return w >= 0 && w <= 6 }

// Slot is one weekly recurrence rule of a class: a weekday plus a half-open
// time range [Start, End).
type Slot struct {
	Weekday SlotWeekday `json:"weekday"`
	Start   TimeOfDay   `json:"start"`
	End     TimeOfDay   `json:"end"`
}

// Validate checks a single slot.
func (s Slot) Validate() error {
	if !s.Weekday.Valid() {
		return &ValidationError{Field: "weekday", Reason: "must be 0 (Sunday) through 6 (Saturday)"}
	}
	if s.Start >= s.End {
		return &ValidationError{Field: "start", Reason: "slot start must be before its end"}
	}
	return nil
}

// RecurringClass is a named weekly activity bound to one room.  Its slots
// describe when it recurs; the optional ValidFrom/ValidTo dates bound the
// recurrence (inclusive on both sides, nil means open-ended).  SchoolYear is
// a partition tag used to keep past years browsable without mixing them into
// the current plan.
type RecurringClass struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Instructor string `json:"instructor,omitempty"`
	Organizer  string `json:"organizer"`
	Paid       bool   `json:"paid"`
	RoomID     uint64 `json:"room_id"`
	SchoolYear string `json:"school_year"`
	ValidFrom  *Date  `json:"valid_from,omitempty"`
	ValidTo    *Date  `json:"valid_to,omitempty"`
	Slots      []Slot `json:"slots"`
}

// Validate enforces the invariants a class must satisfy before any save:
// non-empty name, an assigned room, a non-empty slot list with well-formed
// slots, and a coherent validity window when both bounds are present.
func (c RecurringClass) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Reason: "class name is required"}
	}
	if c.RoomID == 0 {
		return &ValidationError{Field: "room_id", Reason: "class must be assigned to a room"}
	}
	if len(c.Slots) == 0 {
		return &ValidationError{Field: "slots", Reason: "class needs at least one weekly slot"}
	}
	for _, s := range c.Slots {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	if c.ValidFrom != nil && c.ValidTo != nil && c.ValidFrom.After(*c.ValidTo) {
		return &ValidationError{Field: "valid_from", Reason: "valid_from must not be after valid_to"}
	}
	return nil
}

// Covers reports whether the class's validity window contains the date.  An
// absent bound is unbounded on that side; a class with neither bound covers
// every date.
func (c RecurringClass) Covers(d Date) bool {
	if c.ValidFrom != nil && d.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidTo != nil && d.After(*c.ValidTo) {
		return false
	}
	return true
}

// SlotOn returns the first slot recurring on the given weekday, or nil.
func (c RecurringClass) SlotOn(w SlotWeekday) *Slot {
	for i := range c.Slots {
		if c.Slots[i].Weekday == w {
			return &c.Slots[i]
		}
	}
	return nil
}

// The slot list is edited through copy-on-write transformations rather than
// in-place splicing so a caller holding the old class value never observes a
// half-edited slot array.

// WithSlot returns a copy of the class with the slot appended.
func (c RecurringClass) WithSlot(s Slot) RecurringClass {
	out := c
	out.Slots = make([]Slot, 0, len(c.Slots)+1)
	out.Slots = append(out.Slots, c.Slots...)
	out.Slots = append(out.Slots, s)
	return out
}

// WithoutSlot returns a copy of the class with the slot at index i removed.
// An out-of-range index returns the class unchanged.
func (c RecurringClass) WithoutSlot(i int) RecurringClass {
	if i < 0 || i >= len(c.Slots) {
		return c
	}
	out := c
	out.Slots = make([]Slot, 0, len(c.Slots)-1)
	out.Slots = append(out.Slots, c.Slots[:i]...)
	out.Slots = append(out.Slots, c.Slots[i+1:]...)
	return out
}

// WithSlotUpdated returns a copy of the class with the slot at index i
// replaced.  An out-of-range index returns the class unchanged.
func (c RecurringClass) WithSlotUpdated(i int, s Slot) RecurringClass {
	if i < 0 || i >= len(c.Slots) {
		return c
	}
	out := c
	out.Slots = make([]Slot, len(c.Slots))
	copy(out.Slots, c.Slots)
	out.Slots[i] = s
	return out
}
