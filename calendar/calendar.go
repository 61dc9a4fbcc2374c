package calendar

import "time"

// CalendarID identifies a business-day calendar.
type CalendarID string

const (
	// All treats every calendar day, weekends included, as a business day.
	// Curves that carry no calendar fall back to it.
	All CalendarID = "all"

	// Weekend excludes Saturdays and Sundays and has no holiday set.
	Weekend CalendarID = "bus"

	TARGET CalendarID = "TARGET"
	USD    CalendarID = "USD"
	JPN    CalendarID = "JPN"
)

var holidaySets = map[CalendarID]map[string]struct{}{
	TARGET: {},
	USD:    {},
	JPN:    {},
}

// RegisterHolidays adds holiday dates to a calendar's set. Holiday data is
// owned by callers and loaded during setup; registration is not synchronized
// against concurrent pricing.
func RegisterHolidays(cal CalendarID, days ...time.Time) {
	set, ok := holidaySets[cal]
	if !ok {
		set = make(map[string]struct{}, len(days))
		holidaySets[cal] = set
	}
	for _, d := range days {
		set[d.Format("2006-01-02")] = struct{}{}
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	set, ok := holidaySets[cal]
	if !ok {
		return false
	}
	_, ok = set[t.Format("2006-01-02")]
	return ok
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if cal == All || cal == "" {
		return true
	}
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// BusinessDays lists the business days in the half-open range [start, end).
func BusinessDays(cal CalendarID, start, end time.Time) []time.Time {
	var days []time.Time
	for t := start; t.Before(end); t = t.AddDate(0, 0, 1) {
		if IsBusinessDay(cal, t) {
			days = append(days, t)
		}
	}
	return days
}
