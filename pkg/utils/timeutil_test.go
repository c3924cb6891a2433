package utils

import (
	"testing"
	"time"
)

func TestMorningSlot(t *testing.T) {
	// Winter date: UK is on GMT.
	d := time.Date(2026, 1, 15, 13, 45, 0, 0, time.UTC)
	slot := MorningSlot(d)
	if slot.Hour() != 8 || slot.Minute() != 0 {
		t.Errorf("slot = %v, want 08:00 UK", slot)
	}
	if slot.Location() != UK {
		t.Errorf("slot location = %v", slot.Location())
	}
}

func TestNextMorningSlot(t *testing.T) {
	before := time.Date(2026, 1, 15, 6, 0, 0, 0, UK)
	if got := NextMorningSlot(before); got.Day() != 15 || got.Hour() != 8 {
		t.Errorf("before 8am: got %v", got)
	}

	after := time.Date(2026, 1, 15, 9, 0, 0, 0, UK)
	if got := NextMorningSlot(after); got.Day() != 16 || got.Hour() != 8 {
		t.Errorf("after 8am: got %v", got)
	}

	exactly := time.Date(2026, 1, 15, 8, 0, 0, 0, UK)
	if got := NextMorningSlot(exactly); got.Day() != 16 {
		t.Errorf("exactly 8am should roll to next day: got %v", got)
	}
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2026, 8, 29, 15, 0, 0, 0, UK)
	if !IsWeekend(saturday) {
		t.Error("Saturday should be a weekend")
	}
	monday := time.Date(2026, 8, 31, 15, 0, 0, 0, UK)
	if IsWeekend(monday) {
		t.Error("Monday should not be a weekend")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{850 * time.Millisecond, "850ms"},
		{12300 * time.Millisecond, "12.3s"},
		{4*time.Minute + 5*time.Second, "4m05s"},
		{time.Hour + 12*time.Minute, "1h12m"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAgo(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-20 * time.Second), "just now"},
		{now.Add(-35 * time.Minute), "35m ago"},
		{now.Add(-5 * time.Hour), "5h ago"},
		{now.Add(-72 * time.Hour), "3d ago"},
	}
	for _, tc := range tests {
		if got := Ago(tc.at, now); got != tc.want {
			t.Errorf("Ago(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}
