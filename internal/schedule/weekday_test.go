package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlovren/tourism-scheduler/internal/model"
)

func date(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func clock(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	v, err := model.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func TestDayIndexOf(t *testing.T) {
	// Storage weekday (0=Sunday) vs week position (0=Monday).
	cases := []struct {
		weekday model.SlotWeekday
		want    DayIndex
	}{
		{1, 0}, // Monday
		{2, 1},
		{3, 2},
		{4, 3},
		{5, 4},
		{6, 5}, // Saturday
		{0, 6}, // Sunday goes last
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DayIndexOf(tc.weekday), "weekday %d", tc.weekday)
		assert.Equal(t, tc.weekday, SlotWeekdayOf(tc.want), "round trip through day index %d", tc.want)
	}
}

func TestDayIndexOfDate(t *testing.T) {
	monday := date(t, "2025-03-10")
	require.Equal(t, time.Monday, monday.Weekday())

	for i := 0; i < DaysPerWeek; i++ {
		assert.Equal(t, DayIndex(i), DayIndexOfDate(monday.AddDays(i)))
	}
}

func TestWeekStart(t *testing.T) {
	monday := date(t, "2025-03-10")
	for i := 0; i < DaysPerWeek; i++ {
		assert.Equal(t, monday, WeekStart(monday.AddDays(i)), "offset %d", i)
	}
	// The Monday of the following week stays put.
	assert.Equal(t, date(t, "2025-03-17"), WeekStart(date(t, "2025-03-17")))
}

func TestDateAt(t *testing.T) {
	monday := date(t, "2025-03-10")
	assert.Equal(t, monday, DateAt(monday, 0))
	assert.Equal(t, date(t, "2025-03-16"), DateAt(monday, 6))
}
