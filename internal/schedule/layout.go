package schedule

import (
	"sort"

	"github.com/mlovren/tourism-scheduler/internal/model"
)

// LayoutDay assigns every occurrence of one day to a display column so that
// occurrences sharing a column never overlap in time.  It returns an
// annotated copy; the input slice is not modified.
//
// The algorithm is greedy interval-graph coloring: occurrences are visited in
// order of ascending start time (ties keep input order) and each one takes
// the smallest column index whose previous occupants it does not overlap.
// For interval graphs the greedy coloring over sorted starts is optimal, so
// the resulting column count equals the maximum number of occurrences that
// overlap at any single instant of the day.
//
// ColumnCount on every returned occurrence is that day-wide maximum, not the
// population of the occurrence's own column, so rendering can divide the day
// strip into equal lanes.
func LayoutDay(day []Occurrence) []Occurrence {
	if len(day) == 0 {
		return nil
	}
	out := make([]Occurrence, len(day))
	copy(out, day)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })

	// columns[i] holds the occurrences already placed in column i.
	var columns [][]Occurrence
	for i := range out {
		placed := false
		for col := range columns {
			if !columnConflicts(columns[col], out[i]) {
				out[i].ColumnIndex = col
				columns[col] = append(columns[col], out[i])
				placed = true
				break
			}
		}
		if !placed {
			out[i].ColumnIndex = len(columns)
			columns = append(columns, []Occurrence{out[i]})
		}
	}

	count := len(columns)
	for i := range out {
		out[i].ColumnCount = count
	}
	return out
}

// columnConflicts reports whether the candidate overlaps any occupant of a
// column.
func columnConflicts(column []Occurrence, candidate Occurrence) bool {
	for _, o := range column {
		if o.Overlaps(candidate) {
			return true
		}
	}
	return false
}

// LayoutWeek runs LayoutDay over every day of a materialized week and
// computes the proportional day widths.  It returns a new Week; the input is
// untouched.
func LayoutWeek(week Week) (Week, [DaysPerWeek]float64) {
	out := Week{Start: week.Start}
	var counts [DaysPerWeek]int
	for i := range week.Days {
		out.Days[i] = LayoutDay(week.Days[i])
		if len(out.Days[i]) > 0 {
			counts[i] = out.Days[i][0].ColumnCount
		}
	}
	return out, DayWidths(counts)
}

// DayWidths converts per-day column counts into width percentages.  Each
// day's weight is max(1, columnCount) so empty days still get a visible
// strip; the widths are the weights normalized to a 100% total.
func DayWidths(columnCounts [DaysPerWeek]int) [DaysPerWeek]float64 {
	var weights [DaysPerWeek]int
	total := 0
	for i, c := range columnCounts {
		w := c
		if w < 1 {
			w = 1
		}
		weights[i] = w
		total += w
	}
	var widths [DaysPerWeek]float64
	for i, w := range weights {
		widths[i] = float64(w) / float64(total) * 100
	}
	return widths
}

// GridMetrics describes the vertical time grid the rendering layer draws
// occurrences on.
type GridMetrics struct {
	GridStart     model.TimeOfDay // clock time at the top of the grid
	PxPerMinute   float64         // vertical scale
	GutterPercent float64         // horizontal gap subtracted from each lane
}

// Rect is the placement of one occurrence inside its day strip: pixels
// vertically, percentages of the strip width horizontally.
type Rect struct {
	TopPx        float64 `json:"top_px"`
	HeightPx     float64 `json:"height_px"`
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
}

// Rect computes the pixel/percent placement of a laid-out occurrence.  The
// occurrence must already carry its column annotations.
func (g GridMetrics) Rect(o Occurrence) Rect {
	count := o.ColumnCount
	if count < 1 {
		count = 1
	}
	width := 100.0/float64(count) - g.GutterPercent
	if width < 0 {
		width = 0
	}
	return Rect{
		TopPx:        float64(o.Start.Minutes()-g.GridStart.Minutes()) * g.PxPerMinute,
		HeightPx:     float64(o.End.Minutes()-o.Start.Minutes()) * g.PxPerMinute,
		LeftPercent:  float64(o.ColumnIndex) / float64(count) * 100,
		WidthPercent: width,
	}
}
