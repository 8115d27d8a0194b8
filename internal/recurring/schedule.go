package recurring

import "time"

// NextDate returns the occurrence after from for the given frequency.
// Week-based cadences add exact days. Month and year cadences aim for
// anchorDay in the target month, clamping to the last valid day when the
// month is shorter: an anchor of 31 lands on Feb 28 (29 in leap years)
// and springs back to Mar 31, so chains never drift to the February day.
// An anchorDay of zero or less falls back to from's day of month.
// Unknown frequencies behave as monthly.
func NextDate(freq Frequency, from time.Time, anchorDay int) time.Time {
	switch freq {
	case Weekly:
		return from.AddDate(0, 0, 7)
	case Biweekly:
		return from.AddDate(0, 0, 14)
	case Quarterly:
		return addMonthsAnchored(from, 3, anchorDay)
	case Yearly:
		return addMonthsAnchored(from, 12, anchorDay)
	default:
		return addMonthsAnchored(from, 1, anchorDay)
	}
}

// addMonthsAnchored advances by whole months toward anchorDay without the
// normalization overflow of time.AddDate (which turns Jan 31 + 1 month
// into Mar 2/3).
func addMonthsAnchored(t time.Time, months, anchorDay int) time.Time {
	if anchorDay <= 0 {
		anchorDay = t.Day()
	}
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := anchorDay
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
