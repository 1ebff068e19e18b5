package billing

import "time"

// Calendar arithmetic for billing periods and due dates. All functions
// operate on calendar dates in UTC, never on instants, so results do not
// depend on the server timezone.

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date builds a calendar date at UTC midnight, clamping the day to the
// month's length.
func Date(year int, month time.Month, day int) time.Time {
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ClampedMonthAdd adds calendar months to a date, preserving the day of
// month. When the target month is shorter, the day is clamped to its last
// day rather than rolling into the following month: 2024-01-31 plus one
// month is 2024-02-29.
func ClampedMonthAdd(date time.Time, months int) time.Time {
	monthIndex := int(date.Month()) - 1 + months
	year := date.Year() + monthIndex/12
	monthIndex %= 12
	if monthIndex < 0 {
		monthIndex += 12
		year--
	}
	return Date(year, time.Month(monthIndex+1), date.Day())
}

// ResolveBillingPeriod returns the start and end dates of a billing month.
// When startDay > endDay the period spans two calendar months: it starts in
// the billing month and ends in the following one. Both bounds are clamped
// to their month's length.
func ResolveBillingPeriod(year, month, startDay, endDay int) (time.Time, time.Time) {
	start := Date(year, time.Month(month), startDay)
	if startDay > endDay {
		// The end falls in the following month, so the day clamps against
		// that month's length, not the billing month's.
		endYear, endMonth := year, month+1
		if endMonth > 12 {
			endMonth = 1
			endYear++
		}
		return start, Date(endYear, time.Month(endMonth), endDay)
	}
	return start, Date(year, time.Month(month), endDay)
}

// ResolveDueDate returns the payment due date for a billing month. The due
// date always falls in the month following the billing month, with the due
// day clamped to that month's length and the year rolling over past December.
func ResolveDueDate(year, month, dueDay int) time.Time {
	dueYear, dueMonth := year, month+1
	if dueMonth > 12 {
		dueMonth = 1
		dueYear++
	}
	return Date(dueYear, time.Month(dueMonth), dueDay)
}
