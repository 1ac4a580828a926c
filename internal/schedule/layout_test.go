package schedule

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlovren/tourism-scheduler/internal/model"
)

func occ(t *testing.T, name, start, end string) Occurrence {
	t.Helper()
	return Occurrence{Kind: KindClass, Name: name, Start: clock(t, start), End: clock(t, end)}
}

// The three-interval scenario: the first two overlap and take distinct
// columns, the third touches the first's end and shares its column.
func TestLayoutDayThreeIntervals(t *testing.T) {
	day := []Occurrence{
		occ(t, "a", "09:00", "10:00"),
		occ(t, "b", "09:30", "10:30"),
		occ(t, "c", "10:00", "11:00"),
	}
	out := LayoutDay(day)
	require.Len(t, out, 3)

	cols := map[string]int{}
	for _, o := range out {
		cols[o.Name] = o.ColumnIndex
		assert.Equal(t, 2, o.ColumnCount, "day-wide maximum, on every occurrence")
	}
	assert.NotEqual(t, cols["a"], cols["b"], "overlapping occurrences take distinct columns")
	assert.Equal(t, cols["a"], cols["c"], "a touching occurrence reuses the earliest free column")
}

func TestLayoutDayEmpty(t *testing.T) {
	assert.Nil(t, LayoutDay(nil))
	assert.Nil(t, LayoutDay([]Occurrence{}))
}

func TestLayoutDaySingle(t *testing.T) {
	out := LayoutDay([]Occurrence{occ(t, "solo", "09:00", "10:00")})
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].ColumnIndex)
	assert.Equal(t, 1, out[0].ColumnCount)
}

func TestLayoutDayDoesNotMutateInput(t *testing.T) {
	day := []Occurrence{
		occ(t, "b", "09:30", "10:30"),
		occ(t, "a", "09:00", "10:00"),
	}
	_ = LayoutDay(day)
	assert.Equal(t, "b", day[0].Name, "input order preserved")
	assert.Zero(t, day[0].ColumnCount, "input annotations untouched")
}

// No two occurrences sharing a column may overlap, for any input order.
func TestLayoutDayColumnsNeverOverlap(t *testing.T) {
	day := []Occurrence{
		occ(t, "a", "09:00", "12:00"),
		occ(t, "b", "09:00", "09:45"),
		occ(t, "c", "09:30", "10:15"),
		occ(t, "d", "10:00", "11:00"),
		occ(t, "e", "11:00", "12:00"),
	}
	perms := [][]int{
		{0, 1, 2, 3, 4}, {4, 3, 2, 1, 0}, {2, 0, 4, 1, 3}, {1, 4, 0, 3, 2},
	}
	for _, p := range perms {
		input := make([]Occurrence, len(day))
		for i, idx := range p {
			input[i] = day[idx]
		}
		out := LayoutDay(input)
		for i := range out {
			for j := i + 1; j < len(out); j++ {
				if out[i].ColumnIndex == out[j].ColumnIndex {
					assert.False(t, out[i].Overlaps(out[j]),
						"%s and %s share column %d (perm %v)", out[i].Name, out[j].Name, out[i].ColumnIndex, p)
				}
			}
		}
		assert.Equal(t, 3, out[0].ColumnCount, "column count is order-invariant (perm %v)", p)
	}
}

// maxSimultaneous is the brute-force reference: the largest number of
// occurrences covering any single instant.
func maxSimultaneous(day []Occurrence) int {
	best := 0
	for _, o := range day {
		at := o.Start // half-open ranges: density can only peak at a start
		n := 0
		for _, p := range day {
			if p.Start <= at && at < p.End {
				n++
			}
		}
		if n > best {
			best = n
		}
	}
	return best
}

// Greedy coloring of intervals is optimal: the column count must equal the
// brute-force maximum overlap for arbitrary random interval sets.
func TestLayoutDayColumnCountEqualsMaxOverlap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(12)
		day := make([]Occurrence, n)
		for i := range day {
			start := 8*60 + rng.Intn(10*60)
			length := 15 + rng.Intn(180)
			day[i] = Occurrence{
				Kind:  KindEvent,
				Name:  string(rune('a' + i)),
				Start: model.TimeOfDay(start),
				End:   model.TimeOfDay(start + length),
			}
		}
		out := LayoutDay(day)
		want := maxSimultaneous(day)
		require.Equal(t, want, out[0].ColumnCount, "trial %d: %+v", trial, day)

		// And the invariant itself: no same-column overlap.
		for i := range out {
			for j := i + 1; j < len(out); j++ {
				if out[i].ColumnIndex == out[j].ColumnIndex {
					require.False(t, out[i].Overlaps(out[j]), "trial %d", trial)
				}
			}
		}
	}
}

func TestDayWidths(t *testing.T) {
	// Empty week: every day weighs 1, equal sevenths.
	widths := DayWidths([DaysPerWeek]int{})
	for _, w := range widths {
		assert.InDelta(t, 100.0/7, w, 1e-9)
	}

	// A busy Monday (3 columns) widens at the expense of the rest.
	widths = DayWidths([DaysPerWeek]int{3, 1, 1, 1, 1, 1, 0})
	assert.InDelta(t, 3.0/9*100, widths[0], 1e-9)
	assert.InDelta(t, 1.0/9*100, widths[1], 1e-9)
	assert.InDelta(t, 1.0/9*100, widths[6], 1e-9, "empty day still weighs 1")

	total := 0.0
	for _, w := range widths {
		total += w
	}
	assert.InDelta(t, 100, total, 1e-9)
}

func TestLayoutWeek(t *testing.T) {
	week := Week{Start: date(t, "2025-03-10")}
	week.Days[0] = []Occurrence{
		occ(t, "a", "09:00", "10:00"),
		occ(t, "b", "09:30", "10:30"),
	}
	week.Days[2] = []Occurrence{occ(t, "c", "12:00", "13:00")}

	out, widths := LayoutWeek(week)
	assert.Equal(t, 2, out.Days[0][0].ColumnCount)
	assert.Equal(t, 1, out.Days[2][0].ColumnCount)
	// Weights: 2,1,1,1,1,1,1 = 8.
	assert.InDelta(t, 25, widths[0], 1e-9)
	assert.InDelta(t, 12.5, widths[2], 1e-9)

	// The input week is untouched.
	assert.Zero(t, week.Days[0][0].ColumnCount)
}

func TestGridMetricsRect(t *testing.T) {
	g := GridMetrics{GridStart: clock(t, "08:00"), PxPerMinute: 1, GutterPercent: 2}
	o := occ(t, "a", "09:00", "10:30")
	o.ColumnIndex = 1
	o.ColumnCount = 2

	r := g.Rect(o)
	assert.InDelta(t, 60, r.TopPx, 1e-9)
	assert.InDelta(t, 90, r.HeightPx, 1e-9)
	assert.InDelta(t, 50, r.LeftPercent, 1e-9)
	assert.InDelta(t, 48, r.WidthPercent, 1e-9)

	// Unlaid-out occurrences fall back to a single full-width lane.
	solo := occ(t, "b", "08:00", "08:30")
	r = g.Rect(solo)
	assert.InDelta(t, 0, r.TopPx, 1e-9)
	assert.True(t, math.Abs(r.WidthPercent-98) < 1e-9)
}
