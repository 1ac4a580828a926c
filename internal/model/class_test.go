package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClass(t *testing.T) RecurringClass {
	t.Helper()
	return RecurringClass{
		Name:      "Yoga",
		Organizer: "Tourist Office",
		RoomID:    1,
		Slots: []Slot{
			{Weekday: 1, Start: mustClock(t, "09:30"), End: mustClock(t, "10:30")},
		},
	}
}

func TestClassValidate(t *testing.T) {
	require.NoError(t, validClass(t).Validate())

	cases := []struct {
		name   string
		mutate func(*RecurringClass)
	}{
		{"empty name", func(c *RecurringClass) { c.Name = "  " }},
		{"no room", func(c *RecurringClass) { c.RoomID = 0 }},
		{"no slots", func(c *RecurringClass) { c.Slots = nil }},
		{"inverted slot times", func(c *RecurringClass) { c.Slots[0].Start, c.Slots[0].End = c.Slots[0].End, c.Slots[0].Start }},
		{"zero-length slot", func(c *RecurringClass) { c.Slots[0].End = c.Slots[0].Start }},
		{"weekday out of range", func(c *RecurringClass) { c.Slots[0].Weekday = 7 }},
		{"negative weekday", func(c *RecurringClass) { c.Slots[0].Weekday = -1 }},
		{"inverted validity window", func(c *RecurringClass) {
			from := mustDate(t, "2025-06-01")
			to := mustDate(t, "2025-05-01")
			c.ValidFrom, c.ValidTo = &from, &to
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validClass(t)
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestClassCovers(t *testing.T) {
	c := validClass(t)

	// No bounds: covers everything.
	assert.True(t, c.Covers(mustDate(t, "1999-01-01")))
	assert.True(t, c.Covers(mustDate(t, "2999-12-31")))

	from := mustDate(t, "2025-03-01")
	to := mustDate(t, "2025-03-31")
	c.ValidFrom, c.ValidTo = &from, &to

	assert.False(t, c.Covers(mustDate(t, "2025-02-28")))
	assert.True(t, c.Covers(mustDate(t, "2025-03-01")), "lower bound is inclusive")
	assert.True(t, c.Covers(mustDate(t, "2025-03-15")))
	assert.True(t, c.Covers(mustDate(t, "2025-03-31")), "upper bound is inclusive")
	assert.False(t, c.Covers(mustDate(t, "2025-04-01")))

	// Open-ended on one side.
	c.ValidTo = nil
	assert.True(t, c.Covers(mustDate(t, "2999-12-31")))
	assert.False(t, c.Covers(mustDate(t, "2025-02-28")))
}

func TestSlotOn(t *testing.T) {
	c := validClass(t)
	require.NotNil(t, c.SlotOn(1))
	assert.Nil(t, c.SlotOn(2))
}

func TestImmutableSlotEdits(t *testing.T) {
	c := validClass(t)
	extra := Slot{Weekday: 3, Start: mustClock(t, "17:00"), End: mustClock(t, "18:00")}

	added := c.WithSlot(extra)
	require.Len(t, added.Slots, 2)
	assert.Len(t, c.Slots, 1, "original class must be untouched")
	assert.Equal(t, extra, added.Slots[1])

	updated := added.WithSlotUpdated(0, Slot{Weekday: 5, Start: mustClock(t, "08:00"), End: mustClock(t, "09:00")})
	assert.Equal(t, SlotWeekday(1), added.Slots[0].Weekday, "source of the update must be untouched")
	assert.Equal(t, SlotWeekday(5), updated.Slots[0].Weekday)

	removed := added.WithoutSlot(0)
	require.Len(t, removed.Slots, 1)
	assert.Equal(t, extra, removed.Slots[0])
	assert.Len(t, added.Slots, 2, "source of the removal must be untouched")

	// Out-of-range indices are no-ops.
	assert.Equal(t, added.Slots, added.WithoutSlot(5).Slots)
	assert.Equal(t, added.Slots, added.WithSlotUpdated(-1, extra).Slots)
}

func TestEventValidate(t *testing.T) {
	ev := Event{
		Name:   "Concert",
		Date:   mustDate(t, "2025-03-10"),
		Start:  mustClock(t, "10:00"),
		End:    mustClock(t, "11:00"),
		RoomID: 1,
	}
	require.NoError(t, ev.Validate())

	bad := ev
	bad.Name = ""
	assert.Error(t, bad.Validate())

	bad = ev
	bad.Date = Date{}
	assert.Error(t, bad.Validate())

	bad = ev
	bad.RoomID = 0
	assert.Error(t, bad.Validate())

	bad = ev
	bad.Start, bad.End = bad.End, bad.Start
	assert.Error(t, bad.Validate())
}

func TestExceptionValidate(t *testing.T) {
	x := CancellationException{ClassID: 1, Date: mustDate(t, "2025-03-10"), Reason: "holiday"}
	require.NoError(t, x.Validate())

	bad := x
	bad.ClassID = 0
	assert.Error(t, bad.Validate())

	bad = x
	bad.Reason = " "
	assert.Error(t, bad.Validate())
}
