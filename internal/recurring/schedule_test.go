package recurring

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDateFixedOffsets(t *testing.T) {
	from := date(2026, 3, 10)
	cases := []struct {
		freq Frequency
		want time.Time
	}{
		{Weekly, date(2026, 3, 17)},
		{Biweekly, date(2026, 3, 24)},
		{Monthly, date(2026, 4, 10)},
		{Quarterly, date(2026, 6, 10)},
		{Yearly, date(2027, 3, 10)},
	}
	for _, tc := range cases {
		if got := NextDate(tc.freq, from, from.Day()); !got.Equal(tc.want) {
			t.Fatalf("%s from %s: expected %s got %s", tc.freq, from, tc.want, got)
		}
	}
}

func TestNextDateMonthEndClamps(t *testing.T) {
	cases := []struct {
		freq   Frequency
		from   time.Time
		anchor int
		want   time.Time
	}{
		{Monthly, date(2026, 1, 31), 31, date(2026, 2, 28)},
		{Monthly, date(2024, 1, 31), 31, date(2024, 2, 29)}, // leap year
		{Monthly, date(2026, 3, 31), 31, date(2026, 4, 30)},
		{Monthly, date(2026, 8, 31), 31, date(2026, 9, 30)},
		{Quarterly, date(2026, 11, 30), 30, date(2027, 2, 28)},
		{Yearly, date(2024, 2, 29), 29, date(2025, 2, 28)},
	}
	for _, tc := range cases {
		if got := NextDate(tc.freq, tc.from, tc.anchor); !got.Equal(tc.want) {
			t.Fatalf("%s from %s: expected %s got %s",
				tc.freq, tc.from.Format("2006-01-02"), tc.want.Format("2006-01-02"), got.Format("2006-01-02"))
		}
	}
}

// A month-end anchor must spring back after short months: the day never
// sticks at 28 once February has passed.
func TestNextDateAnchorSpringsBackAfterFebruary(t *testing.T) {
	anchor := 31
	current := date(2024, 1, 31)
	want := []time.Time{
		date(2024, 2, 29),
		date(2024, 3, 31),
		date(2024, 4, 30),
		date(2024, 5, 31),
		date(2024, 6, 30),
	}
	for i, expected := range want {
		current = NextDate(Monthly, current, anchor)
		if !current.Equal(expected) {
			t.Fatalf("step %d: expected %s got %s", i+1,
				expected.Format("2006-01-02"), current.Format("2006-01-02"))
		}
	}
}

func TestNextDateZeroAnchorUsesFromDay(t *testing.T) {
	got := NextDate(Monthly, date(2026, 1, 31), 0)
	if !got.Equal(date(2026, 2, 28)) {
		t.Fatalf("expected 2026-02-28 got %s", got.Format("2006-01-02"))
	}
}

func TestNextDateUnknownFrequencyIsMonthly(t *testing.T) {
	from := date(2026, 5, 15)
	if got := NextDate(Frequency("fortnightly-ish"), from, 15); !got.Equal(date(2026, 6, 15)) {
		t.Fatalf("unexpected fallback date %s", got)
	}
}

func TestNextDatePreservesTimeOfDay(t *testing.T) {
	from := time.Date(2026, 1, 31, 14, 30, 0, 0, time.UTC)
	got := NextDate(Monthly, from, 31)
	want := time.Date(2026, 2, 28, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s got %s", want, got)
	}
}
