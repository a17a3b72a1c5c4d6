package util

import (
	"fmt"
	"time"
)

// ageUnit is one step of the relative date scale. Ages below limit are
// counted in size.
type ageUnit struct {
	limit time.Duration
	size  time.Duration
	long  string
	short string
}

var ageUnits = []ageUnit{
	{limit: time.Hour, size: time.Minute, long: "minute", short: "m"},
	{limit: 24 * time.Hour, size: time.Hour, long: "hour", short: "h"},
	{limit: 7 * 24 * time.Hour, size: 24 * time.Hour, long: "day", short: "d"},
	{limit: 30 * 24 * time.Hour, size: 7 * 24 * time.Hour, long: "week", short: "w"},
}

// age returns the unit and count for a duration, or false when it is past
// the largest unit. Durations under a minute report count 0.
func age(d time.Duration) (ageUnit, int, bool) {
	if d < time.Minute {
		return ageUnit{}, 0, true
	}
	for _, u := range ageUnits {
		if d < u.limit {
			return u, int(d / u.size), true
		}
	}
	return ageUnit{}, 0, false
}

// RelativeTime formats a record timestamp as "2 hours ago". Dates older
// than a month, or in the future, fall back to "Jan 2, 2006".
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	u, n, ok := age(d)
	switch {
	case d < 0 || !ok:
		return t.Format("Jan 2, 2006")
	case n == 0:
		return "just now"
	case n == 1:
		return fmt.Sprintf("1 %s ago", u.long)
	}
	return fmt.Sprintf("%d %ss ago", n, u.long)
}

// RelativeTimeShort is RelativeTime for narrow columns: "2h ago".
func RelativeTimeShort(t time.Time) string {
	d := time.Since(t)
	u, n, ok := age(d)
	switch {
	case d < 0 || !ok:
		return t.Format("Jan 2")
	case n == 0:
		return "now"
	}
	return fmt.Sprintf("%d%s ago", n, u.short)
}

// Date layouts accepted besides Go reference layouts.
const (
	LayoutRelative      = "relative"
	LayoutRelativeShort = "relative-short"
)

// FormatDate renders a cell timestamp. An empty layout means date only.
func FormatDate(t time.Time, layout string) string {
	switch layout {
	case LayoutRelative:
		return RelativeTime(t)
	case LayoutRelativeShort:
		return RelativeTimeShort(t)
	case "":
		return t.Format("2006-01-02")
	}
	return t.Format(layout)
}
