package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlovren/tourism-scheduler/internal/model"
)

func yoga(t *testing.T) model.RecurringClass {
	t.Helper()
	return model.RecurringClass{
		ID:     7,
		Name:   "Yoga",
		RoomID: 1,
		Slots: []model.Slot{
			// Mondays 09:30-10:30
			{Weekday: 1, Start: clock(t, "09:30"), End: clock(t, "10:30")},
		},
	}
}

func concert(t *testing.T) model.Event {
	t.Helper()
	return model.Event{
		Name:   "Concert",
		Date:   date(t, "2025-03-10"), // a Monday
		Start:  clock(t, "10:00"),
		End:    clock(t, "11:00"),
		RoomID: 1,
	}
}

func TestFindConflictOverlap(t *testing.T) {
	got := FindConflict(concert(t), []model.RecurringClass{yoga(t)})
	require.NotNil(t, got)
	assert.Equal(t, "Yoga", got.Name)
}

func TestFindConflictTouchingEndpointsIsFree(t *testing.T) {
	ev := concert(t)
	ev.Start = clock(t, "10:30") // starts exactly when yoga ends
	ev.End = clock(t, "11:30")
	assert.Nil(t, FindConflict(ev, []model.RecurringClass{yoga(t)}))

	ev.Start = clock(t, "08:30")
	ev.End = clock(t, "09:30") // ends exactly when yoga starts
	assert.Nil(t, FindConflict(ev, []model.RecurringClass{yoga(t)}))
}

func TestFindConflictRoomMismatch(t *testing.T) {
	ev := concert(t)
	ev.RoomID = 2
	assert.Nil(t, FindConflict(ev, []model.RecurringClass{yoga(t)}))
}

func TestFindConflictWeekdayMismatch(t *testing.T) {
	ev := concert(t)
	ev.Date = date(t, "2025-03-11") // a Tuesday
	assert.Nil(t, FindConflict(ev, []model.RecurringClass{yoga(t)}))
}

func TestFindConflictValidityWindow(t *testing.T) {
	c := yoga(t)
	from := date(t, "2025-04-01")
	c.ValidFrom = &from
	assert.Nil(t, FindConflict(concert(t), []model.RecurringClass{c}), "class not yet valid")

	c = yoga(t)
	to := date(t, "2025-03-01")
	c.ValidTo = &to
	assert.Nil(t, FindConflict(concert(t), []model.RecurringClass{c}), "class no longer valid")

	c = yoga(t)
	onDay := date(t, "2025-03-10")
	c.ValidFrom = &onDay
	c.ValidTo = &onDay
	assert.NotNil(t, FindConflict(concert(t), []model.RecurringClass{c}), "bounds are inclusive")
}

func TestFindConflictFirstMatchWins(t *testing.T) {
	a := yoga(t)
	a.ID = 1
	a.Name = "Pilates"
	b := yoga(t)
	b.ID = 2

	got := FindConflict(concert(t), []model.RecurringClass{a, b})
	require.NotNil(t, got)
	assert.Equal(t, uint64(1), got.ID, "input order decides the verdict")

	got = FindConflict(concert(t), []model.RecurringClass{b, a})
	require.NotNil(t, got)
	assert.Equal(t, uint64(2), got.ID)
}

// Swapping which interval plays "candidate" and which "existing" must not
// change the overlap verdict.
func TestOverlapSymmetry(t *testing.T) {
	ranges := []struct{ aStart, aEnd, bStart, bEnd string }{
		{"09:00", "10:00", "09:30", "10:30"},
		{"09:00", "10:00", "10:00", "11:00"},
		{"09:00", "12:00", "10:00", "11:00"},
		{"09:00", "09:30", "11:00", "12:00"},
		{"09:00", "10:00", "09:00", "10:00"},
	}
	for _, r := range ranges {
		ab := overlaps(clock(t, r.aStart), clock(t, r.aEnd), clock(t, r.bStart), clock(t, r.bEnd))
		ba := overlaps(clock(t, r.bStart), clock(t, r.bEnd), clock(t, r.aStart), clock(t, r.aEnd))
		assert.Equal(t, ab, ba, "%+v", r)
	}
}
