package util

import (
	"fmt"
	"strconv"
	"time"

	_ "time/tzdata" // display zones must resolve on hosts without a zoneinfo db
)

// DisplayLayout is the single layout used for every timestamp leaving the API.
const DisplayLayout = "2006-01-02 15:04:05"

// naive layouts carry no offset; they are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTime tries RFC3339, RFC3339Nano, naive ISO-8601 (as UTC) and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), true
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

// LoadDisplayLocation resolves the configured display timezone.
func LoadDisplayLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("display timezone is empty")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return loc, nil
}

// FormatDisplay renders t in loc regardless of how t was encoded. Zero times render as "N/A".
func FormatDisplay(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "N/A"
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayLayout)
}
