package model

import (
	"fmt"
	"strings"
)

// TimeOfDay is a clock time expressed as minutes after midnight.  Slots and
// events store their start and end this way so interval math in the scheduler
// is plain integer comparison.  The wire and storage representation is the
// zero-padded "HH:MM" string.
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM" string into minutes after midnight.  Hours
// run 00-23 and minutes 00-59; anything else is rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &h, &m); err != nil || len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time of day %q: out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// String renders the time as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Minutes returns the raw minutes-after-midnight value.
func (t TimeOfDay) Minutes() int { return int(t) }

// MarshalJSON encodes the time as a "HH:MM" JSON string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a "HH:MM" JSON string.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
