package datetime

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout    = "02/01/2006"
	timeLayout    = "15:04"
	displayLayout = "02/01/2006 15:04"
)

// Parse parses date (DD/MM/YYYY) and time (HH:MM) in loc.
func Parse(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	if dateStr == "" || timeStr == "" {
		return time.Time{}, fmt.Errorf("date and time are required (DD/MM/YYYY and HH:MM)")
	}
	tDate, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected DD/MM/YYYY", dateStr)
	}
	tTime, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(tDate.Year(), tDate.Month(), tDate.Day(),
		tTime.Hour(), tTime.Minute(), 0, 0, loc), nil
}

// ParseStamp parses "DD/MM/YYYY HH:MM" in loc.
func ParseStamp(s string, loc *time.Location) (time.Time, error) {
	date, clock, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, expected DD/MM/YYYY HH:MM", s)
	}
	return Parse(date, clock, loc)
}

// Format renders t in loc, or "" for the zero time.
func Format(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(displayLayout)
}
