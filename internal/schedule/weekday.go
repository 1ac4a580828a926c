// Package schedule implements the room-scheduling core: expanding recurring
// classes and one-off events into concrete week occurrences, detecting
// conflicts between a candidate event and class slots, and laying out each
// day's occurrences into non-overlapping display columns.
//
// Everything in this package is a pure function of its inputs.  Persistence
// and HTTP live elsewhere; repeated calls with equal arguments produce
// structurally equal results.
package schedule

import (
	"github.com/mlovren/tourism-scheduler/internal/model"
)

// DayIndex addresses a day inside the displayed week using the Monday-first
// convention: 0 = Monday … 6 = Sunday.  This is deliberately a distinct type
// from model.SlotWeekday (0 = Sunday storage convention); the two only meet
// through the conversion functions below so a raw int can never silently
// cross the boundary with the wrong convention.
type DayIndex int

// DaysPerWeek is the number of days materialized for a week view.
const DaysPerWeek = 7

// Valid reports whether the index is in 0..6.
func (d DayIndex) Valid() bool { return d >= 0 && d < DaysPerWeek }

// DayIndexOf converts a storage-convention weekday into the Monday-first
// week position: Monday (1) -> 0, …, Sunday (0) -> 6.
func DayIndexOf(w model.SlotWeekday) DayIndex {
	return DayIndex((int(w) + 6) % 7)
}

// SlotWeekdayOf converts a Monday-first week position back into the
// storage-convention weekday: 0 -> Monday (1), …, 6 -> Sunday (0).
func SlotWeekdayOf(d DayIndex) model.SlotWeekday {
	return model.SlotWeekday((int(d) + 1) % 7)
}

// DayIndexOfDate returns the date's position inside its Monday-first week.
func DayIndexOfDate(d model.Date) DayIndex {
	return DayIndexOf(model.SlotWeekdayOf(d))
}

// WeekStart normalizes an arbitrary date to the Monday of its week.  The
// Monday date is the identity of a week everywhere in the scheduler.
func WeekStart(d model.Date) model.Date {
	return d.AddDays(-int(DayIndexOfDate(d)))
}

// DateAt returns the calendar date of the given day inside the week that
// starts on weekStart (which must be a Monday).
func DateAt(weekStart model.Date, idx DayIndex) model.Date {
	return weekStart.AddDays(int(idx))
}
