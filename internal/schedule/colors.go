package schedule

import "github.com/mlovren/tourism-scheduler/internal/model"

// palette is the fixed set of display colors cycled over class identities.
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// ColorTable maps a class identity (name plus instructor) to a display
// color.  It is built per request from the class list and passed into
// materialization as an explicit dependency, so two calls over the same
// classes always color them the same way and no shared mutable state is
// involved.
type ColorTable map[string]string

// colorKey derives the table key for a class identity.
func colorKey(name, instructor string) string {
	return name + "\x00" + instructor
}

// BuildColorTable assigns palette colors to classes in input order.  Classes
// sharing name and instructor share a color; when the palette is exhausted it
// wraps around.
func BuildColorTable(classes []model.RecurringClass) ColorTable {
	table := make(ColorTable, len(classes))
	next := 0
	for _, c := range classes {
		key := colorKey(c.Name, c.Instructor)
		if _, ok := table[key]; ok {
			continue
		}
		table[key] = palette[next%len(palette)]
		next++
	}
	return table
}

// Lookup returns the color for a class identity, or "" when the table does
// not know it.
func (t ColorTable) Lookup(name, instructor string) string {
	return t[colorKey(name, instructor)]
}
