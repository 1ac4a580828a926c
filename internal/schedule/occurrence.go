package schedule

import "github.com/mlovren/tourism-scheduler/internal/model"

// OccurrenceKind tags an occurrence with its source entity type.
type OccurrenceKind string

const (
	// KindClass marks an occurrence expanded from a recurring class slot.
	KindClass OccurrenceKind = "class"
	// KindEvent marks an occurrence of a one-off event.
	KindEvent OccurrenceKind = "event"
)

// Occurrence is one concrete, dated appearance of either a recurring class or
// a one-off event.  Occurrences only exist between a materialization call and
// the rendering of its result; they are never persisted and never mutated in
// place, since the layout step returns annotated copies.
type Occurrence struct {
	Kind OccurrenceKind `json:"kind"`

	// ClassID is set when Kind is KindClass, EventID when Kind is KindEvent.
	ClassID uint64 `json:"class_id,omitempty"`
	EventID uint64 `json:"event_id,omitempty"`

	Name      string          `json:"name"`
	Organizer string          `json:"organizer,omitempty"`
	Date      model.Date      `json:"date"`
	Start     model.TimeOfDay `json:"start"`
	End       model.TimeOfDay `json:"end"`
	RoomID    uint64          `json:"room_id"`
	Paid      bool            `json:"paid"`
	Color     string          `json:"color,omitempty"`

	// ColumnIndex and ColumnCount are filled in by LayoutDay.  ColumnCount is
	// the day-wide maximum, identical for every occurrence of the same day.
	ColumnIndex int `json:"column_index"`
	ColumnCount int `json:"column_count"`
}

// overlaps reports whether two half-open time ranges [aStart,aEnd) and
// [bStart,bEnd) share at least one instant.  Touching ranges (aEnd == bStart)
// do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd model.TimeOfDay) bool {
	return max(aStart, bStart) < min(aEnd, bEnd)
}

// Overlaps reports whether the time ranges of two occurrences overlap under
// the half-open interval rule.
func (o Occurrence) Overlaps(other Occurrence) bool {
	return overlaps(o.Start, o.End, other.Start, other.End)
}
