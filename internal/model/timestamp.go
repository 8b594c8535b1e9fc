package model

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the date format used in exported reports and
// stored audit rows.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a time.Time that serializes as "2006-01-02 15:04:05",
// the format consumers of the export file already parse.
type Timestamp time.Time

// String formats the timestamp in the export layout.
func (t Timestamp) String() string {
	return time.Time(t).Format(TimestampLayout)
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// IsZero reports whether the timestamp is the zero time.
func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

// MarshalJSON encodes the timestamp as a quoted export-layout string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// UnmarshalJSON decodes an export-layout string, falling back to
// RFC 3339 for reports written by other tools.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(TimestampLayout, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
	}
	*t = Timestamp(parsed)
	return nil
}
