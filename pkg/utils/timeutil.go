// Package utils provides common utility functions for pitchside.
package utils

import (
	"fmt"
	"time"
)

// UK is the league's home timezone.
var UK *time.Location

func init() {
	var err error
	UK, err = time.LoadLocation("Europe/London")
	if err != nil {
		// Fallback if the tz database is not available. GMT only, no DST.
		UK = time.FixedZone("GMT", 0)
	}
}

// NowUK returns the current time in the UK.
func NowUK() time.Time {
	return time.Now().In(UK)
}

// ToUK converts a time.Time to UK time.
func ToUK(t time.Time) time.Time {
	return t.In(UK)
}

// MorningSlot returns the daily 8:00 AM UK publication slot for a date.
func MorningSlot(date time.Time) time.Time {
	d := date.In(UK)
	return time.Date(d.Year(), d.Month(), d.Day(), 8, 0, 0, 0, UK)
}

// NextMorningSlot returns the next 8:00 AM UK slot strictly after t.
func NextMorningSlot(t time.Time) time.Time {
	slot := MorningSlot(t)
	if !slot.After(t.In(UK)) {
		slot = slot.AddDate(0, 0, 1)
	}
	return slot
}

// IsWeekend reports whether t falls on a Saturday or Sunday in UK time,
// when most fixtures are played.
func IsWeekend(t time.Time) bool {
	wd := t.In(UK).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// FormatDuration renders a duration compactly: "850ms", "12.3s", "4m05s",
// "1h12m".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

// Ago renders how long ago t was, relative to now: "just now", "35m ago",
// "5h ago", "3d ago".
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours())/24)
	}
}
