package schedule

import "github.com/mlovren/tourism-scheduler/internal/model"

// FindConflict returns the first recurring class whose weekly slot would
// collide with the candidate event, or nil when the event's room and time are
// free.  A class collides when all of the following hold:
//
//   - it is booked into the same room as the candidate,
//   - its validity window covers the candidate's date,
//   - it has a slot on the candidate date's weekday whose half-open time
//     range overlaps the candidate's.  Touching ranges (class ends exactly
//     when the event starts) are not a conflict.
//
// Classes are examined in input order and the first match wins, so callers
// get a deterministic verdict.  The function is pure: recording the
// cancellation that resolves a conflict is the caller's job, after the user
// confirmed the override.
func FindConflict(candidate model.Event, classes []model.RecurringClass) *model.RecurringClass {
	weekday := model.SlotWeekdayOf(candidate.Date)
	for i := range classes {
		c := &classes[i]
		if c.RoomID != candidate.RoomID {
			continue
		}
		if !c.Covers(candidate.Date) {
			continue
		}
		for _, s := range c.Slots {
			if s.Weekday != weekday {
				continue
			}
			if overlaps(candidate.Start, candidate.End, s.Start, s.End) {
				return c
			}
		}
	}
	return nil
}
