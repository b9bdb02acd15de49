package dates

import "time"

// Format is the canonical wire format for calendar dates.
const Format = "2006-01-02"

// Midnight truncates t to a calendar date at 00:00:00 UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths advances d by the given number of months with calendar-correct
// rollover: the day of month is preserved unless the target month is shorter,
// in which case it clamps to the last day of that month. time.AddDate cannot
// be used here because it normalizes Jan 31 + 1 month into March.
func AddMonths(d time.Time, months int) time.Time {
	y, m, day := d.UTC().Date()
	total := y*12 + int(m) - 1 + months
	y = total / 12
	m = time.Month(total%12 + 1)
	if last := daysIn(y, m); day > last {
		day = last
	}
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the number of whole calendar months from a to b,
// counting month boundaries only (day of month is ignored).
func MonthsBetween(a, b time.Time) int {
	a, b = a.UTC(), b.UTC()
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// DaysUntil returns the number of days from today until d, clamped at zero.
func DaysUntil(d time.Time, now time.Time) int {
	days := int(Midnight(d).Sub(Midnight(now)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
