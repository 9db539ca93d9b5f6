// Package dates normalises date values posted by the date pickers.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// ISOLayout matches JavaScript's Date.prototype.toISOString.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// DayLayout is the calendar day used by visit and delivery filters.
const DayLayout = "2006-01-02"

var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DayLayout,
}

// Parse accepts the formats emitted by HTML date and datetime inputs as well
// as full RFC 3339 timestamps. Values without a zone are read as UTC.
func Parse(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fmt.Errorf("dates: empty value")
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("dates: unrecognised value %q", value)
}

// NormalizeISO returns value as a UTC millisecond timestamp, the form the
// backend expects for visit and delivery dates.
func NormalizeISO(value string) (string, error) {
	t, err := Parse(value)
	if err != nil {
		return "", err
	}
	return t.Format(ISOLayout), nil
}

// Day returns the UTC calendar day of value.
func Day(value string) (string, error) {
	t, err := Parse(value)
	if err != nil {
		return "", err
	}
	return t.Format(DayLayout), nil
}
