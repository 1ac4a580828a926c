package schedule

import "github.com/mlovren/tourism-scheduler/internal/model"

// RoomFilter restricts materialization to a set of room IDs.  A nil or empty
// filter admits every room.
type RoomFilter map[uint64]bool

// NewRoomFilter builds a filter from a list of room IDs.
func NewRoomFilter(ids []uint64) RoomFilter {
	if len(ids) == 0 {
		return nil
	}
	f := make(RoomFilter, len(ids))
	for _, id := range ids {
		f[id] = true
	}
	return f
}

// admits reports whether the filter lets the room through.
func (f RoomFilter) admits(roomID uint64) bool {
	return len(f) == 0 || f[roomID]
}

// ExceptionKey identifies one suppressed class occurrence.
type ExceptionKey struct {
	ClassID uint64
	Date    model.Date
}

// ExceptionSet is the sparse set of (class, date) pairs whose occurrences are
// suppressed during materialization.
type ExceptionSet map[ExceptionKey]bool

// NewExceptionSet indexes cancellation exceptions by their composite key.
func NewExceptionSet(excs []model.CancellationException) ExceptionSet {
	set := make(ExceptionSet, len(excs))
	for _, x := range excs {
		set[ExceptionKey{ClassID: x.ClassID, Date: x.Date}] = true
	}
	return set
}

// Week is the materialized form of one calendar week: for every Monday-first
// day index the concrete occurrences on that date.  Days carries plain
// materializer output; column annotations and day widths are added separately
// by the layout step (LayoutWeek).
type Week struct {
	Start model.Date              // the week's Monday
	Days  [DaysPerWeek][]Occurrence
}

// Materialize expands recurring classes, one-off events and cancellation
// exceptions into the concrete occurrence lists of one week.
//
// For each of the seven dates starting at weekStart (a Monday) it emits:
//
//   - one class occurrence per class that passes the room filter, whose
//     validity window covers the date and which has a slot on the date's
//     weekday, unless the (class, date) pair is in the exception set;
//   - one event occurrence per event on that date that passes the room
//     filter.
//
// Materialization never filters overlapping occurrences against each other:
// overlap prevention is a creation-time workflow (FindConflict), so a class
// occurrence and an event occupying the same room at the same time both
// appear in the output when no exception was recorded.  The layout step then
// renders them side by side.
//
// The function is pure; calling it twice with the same arguments yields
// structurally equal weeks.
func Materialize(
	weekStart model.Date,
	filter RoomFilter,
	classes []model.RecurringClass,
	events []model.Event,
	exceptions ExceptionSet,
	colors ColorTable,
) Week {
	week := Week{Start: weekStart}

	for idx := DayIndex(0); idx < DaysPerWeek; idx++ {
		date := DateAt(weekStart, idx)
		weekday := model.SlotWeekdayOf(date)
		var day []Occurrence

		for i := range classes {
			c := &classes[i]
			if !filter.admits(c.RoomID) || !c.Covers(date) {
				continue
			}
			slot := c.SlotOn(weekday)
			if slot == nil {
				continue
			}
			if exceptions[ExceptionKey{ClassID: c.ID, Date: date}] {
				continue
			}
			day = append(day, Occurrence{
				Kind:      KindClass,
				ClassID:   c.ID,
				Name:      c.Name,
				Organizer: c.Organizer,
				Date:      date,
				Start:     slot.Start,
				End:       slot.End,
				RoomID:    c.RoomID,
				Paid:      c.Paid,
				Color:     colors.Lookup(c.Name, c.Instructor),
			})
		}

		for _, e := range events {
			if !filter.admits(e.RoomID) || !e.Date.Equal(date) {
				continue
			}
			day = append(day, Occurrence{
				Kind:      KindEvent,
				EventID:   e.ID,
				Name:      e.Name,
				Organizer: e.Organizer,
				Date:      date,
				Start:     e.Start,
				End:       e.End,
				RoomID:    e.RoomID,
				Paid:      e.Paid,
			})
		}

		week.Days[idx] = day
	}
	return week
}
