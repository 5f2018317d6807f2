package util

import (
    "strconv"
    "time"
)

// DateLayout is the observation date format used by the FRED API.
const DateLayout = "2006-01-02"

// ParseTime tries RFC3339, the FRED date layout, and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(DateLayout, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// FormatDate renders a time as a FRED observation date.
func FormatDate(t time.Time) string {
    return t.Format(DateLayout)
}

// DayRange returns the [start, end] pair covering the last N days.
func DayRange(days int) (time.Time, time.Time) {
    end := time.Now()
    return end.AddDate(0, 0, -days), end
}
