package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlovren/tourism-scheduler/internal/model"
)

func week0310(t *testing.T) model.Date { return date(t, "2025-03-10") } // a Monday

func TestMaterializeEmitsOneOccurrencePerClassAndDay(t *testing.T) {
	c := yoga(t) // Mondays 09:30-10:30, room 1, unbounded
	week := Materialize(week0310(t), nil, []model.RecurringClass{c}, nil, nil, nil)

	require.Len(t, week.Days[0], 1, "exactly one occurrence on Monday")
	occ := week.Days[0][0]
	assert.Equal(t, KindClass, occ.Kind)
	assert.Equal(t, c.ID, occ.ClassID)
	assert.Equal(t, date(t, "2025-03-10"), occ.Date)
	assert.Equal(t, clock(t, "09:30"), occ.Start)
	assert.Equal(t, clock(t, "10:30"), occ.End)
	assert.Equal(t, uint64(1), occ.RoomID)

	for i := 1; i < DaysPerWeek; i++ {
		assert.Empty(t, week.Days[i], "no occurrences on day %d", i)
	}
}

func TestMaterializeMultipleSlots(t *testing.T) {
	c := yoga(t)
	c.Slots = append(c.Slots, model.Slot{Weekday: 4, Start: clock(t, "18:00"), End: clock(t, "19:00")}) // Thursdays

	week := Materialize(week0310(t), nil, []model.RecurringClass{c}, nil, nil, nil)
	assert.Len(t, week.Days[0], 1) // Monday
	assert.Len(t, week.Days[3], 1) // Thursday at day index 3
	assert.Equal(t, clock(t, "18:00"), week.Days[3][0].Start)
}

func TestMaterializeRespectsValidityWindow(t *testing.T) {
	c := yoga(t)
	from := date(t, "2025-03-11") // Tuesday after the Monday occurrence
	c.ValidFrom = &from

	week := Materialize(week0310(t), nil, []model.RecurringClass{c}, nil, nil, nil)
	assert.Empty(t, week.Days[0], "Monday falls before the validity window")

	// The following week's Monday is inside the window.
	next := Materialize(week0310(t).AddDays(7), nil, []model.RecurringClass{c}, nil, nil, nil)
	assert.Len(t, next.Days[0], 1)
}

func TestMaterializeRespectsRoomFilter(t *testing.T) {
	c := yoga(t)
	other := yoga(t)
	other.ID = 8
	other.RoomID = 2

	filtered := Materialize(week0310(t), NewRoomFilter([]uint64{1}), []model.RecurringClass{c, other}, nil, nil, nil)
	require.Len(t, filtered.Days[0], 1)
	assert.Equal(t, uint64(1), filtered.Days[0][0].RoomID)

	all := Materialize(week0310(t), nil, []model.RecurringClass{c, other}, nil, nil, nil)
	assert.Len(t, all.Days[0], 2, "empty filter admits every room")
}

func TestMaterializeSuppressesExceptedOccurrence(t *testing.T) {
	c := yoga(t)
	excs := NewExceptionSet([]model.CancellationException{
		{ClassID: c.ID, Date: date(t, "2025-03-10"), Reason: "holiday"},
	})

	week := Materialize(week0310(t), nil, []model.RecurringClass{c}, nil, excs, nil)
	assert.Empty(t, week.Days[0], "the excepted occurrence is suppressed")

	// The exception is date-specific: the next week is unaffected.
	next := Materialize(week0310(t).AddDays(7), nil, []model.RecurringClass{c}, nil, excs, nil)
	assert.Len(t, next.Days[0], 1)
}

func TestMaterializeEmitsEvents(t *testing.T) {
	ev := concert(t) // Monday 2025-03-10, 10:00-11:00, room 1
	ev.ID = 42

	week := Materialize(week0310(t), nil, nil, []model.Event{ev}, nil, nil)
	require.Len(t, week.Days[0], 1)
	occ := week.Days[0][0]
	assert.Equal(t, KindEvent, occ.Kind)
	assert.Equal(t, uint64(42), occ.EventID)

	// Events outside the week do not appear.
	late := ev
	late.Date = date(t, "2025-03-17")
	week = Materialize(week0310(t), nil, nil, []model.Event{late}, nil, nil)
	for i := range week.Days {
		assert.Empty(t, week.Days[i])
	}
}

// Materialization does not referee overlaps: an event coexists with a class
// occurrence until an exception is recorded, and once it is, only the event
// remains.  This is the Concert/Yoga workflow end to end.
func TestMaterializeConcertDisplacesYoga(t *testing.T) {
	c := yoga(t)
	ev := concert(t)
	ev.ID = 42

	// Conflict detected at creation time.
	conflicting := FindConflict(ev, []model.RecurringClass{c})
	require.NotNil(t, conflicting)
	assert.Equal(t, "Yoga", conflicting.Name)

	// Before confirmation both would materialize.
	before := Materialize(week0310(t), nil, []model.RecurringClass{c}, []model.Event{ev}, nil, nil)
	assert.Len(t, before.Days[0], 2)

	// Confirming writes the exception keyed (classID, date).
	excs := NewExceptionSet([]model.CancellationException{
		{ClassID: conflicting.ID, Date: ev.Date, Reason: "displaced by Concert"},
	})
	after := Materialize(week0310(t), nil, []model.RecurringClass{c}, []model.Event{ev}, excs, nil)
	require.Len(t, after.Days[0], 1)
	assert.Equal(t, KindEvent, after.Days[0][0].Kind)
	assert.Equal(t, uint64(42), after.Days[0][0].EventID)
}

func TestMaterializeAppliesColorTable(t *testing.T) {
	c := yoga(t)
	colors := BuildColorTable([]model.RecurringClass{c})

	week := Materialize(week0310(t), nil, []model.RecurringClass{c}, nil, nil, colors)
	require.Len(t, week.Days[0], 1)
	assert.NotEmpty(t, week.Days[0][0].Color)
	assert.Equal(t, colors.Lookup(c.Name, c.Instructor), week.Days[0][0].Color)
}

func TestMaterializeIsPure(t *testing.T) {
	c := yoga(t)
	ev := concert(t)
	excs := NewExceptionSet([]model.CancellationException{{ClassID: 99, Date: date(t, "2025-03-12"), Reason: "x"}})
	colors := BuildColorTable([]model.RecurringClass{c})

	a := Materialize(week0310(t), NewRoomFilter([]uint64{1}), []model.RecurringClass{c}, []model.Event{ev}, excs, colors)
	b := Materialize(week0310(t), NewRoomFilter([]uint64{1}), []model.RecurringClass{c}, []model.Event{ev}, excs, colors)
	assert.Equal(t, a, b, "repeat calls with equal inputs produce structurally equal weeks")
}

func TestBuildColorTableDeterministic(t *testing.T) {
	classes := []model.RecurringClass{
		{Name: "Yoga", Instructor: "Ana"},
		{Name: "Yoga", Instructor: "Ivan"},
		{Name: "Yoga", Instructor: "Ana"}, // duplicate identity
		{Name: "Choir"},
	}
	table := BuildColorTable(classes)
	assert.Len(t, table, 3)
	assert.Equal(t, table.Lookup("Yoga", "Ana"), BuildColorTable(classes).Lookup("Yoga", "Ana"))
	assert.NotEqual(t, table.Lookup("Yoga", "Ana"), table.Lookup("Yoga", "Ivan"),
		"same name with different instructor is a different identity")
	assert.Empty(t, table.Lookup("Unknown", ""))
}
