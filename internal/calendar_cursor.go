// Calendar cursor: a mutable wall-clock date with clamped field setters and
// unit-aligned advancement, used by RecurrenceRuleSet.NextMatchFrom.

package calsched_internal

import "time"

// TimeUnit names a calendar granularity for StartOf/unit advancement.
type TimeUnit int

const (
	TimeUnitYear TimeUnit = iota
	TimeUnitMonth
	TimeUnitDay
	TimeUnitHour
	TimeUnitMinute
	TimeUnitSecond
)

// CalendarCursor is a mutable local wall-clock date. Field setters clamp
// out-of-range input rather than error, so the cursor is always a valid
// calendar date.
type CalendarCursor struct {
	t time.Time
}

// NewCalendarCursor wraps t (converted to local time) in a cursor.
func NewCalendarCursor(t time.Time) *CalendarCursor {
	return &CalendarCursor{t: t.Local()}
}

// Time returns the cursor's current instant.
func (c *CalendarCursor) Time() time.Time { return c.t }

func (c *CalendarCursor) Year() int   { return c.t.Year() }
func (c *CalendarCursor) Month() int  { return int(c.t.Month()) }
func (c *CalendarCursor) Day() int    { return c.t.Day() }
func (c *CalendarCursor) Hour() int   { return c.t.Hour() }
func (c *CalendarCursor) Minute() int { return c.t.Minute() }
func (c *CalendarCursor) Second() int { return c.t.Second() }

// Weekday returns the day of the week, 0=Sunday .. 6=Saturday.
func (c *CalendarCursor) Weekday() int { return int(c.t.Weekday()) }

// daysInMonth returns the number of days in the given (possibly
// out-of-range, e.g. month=13) month of year, following Gregorian rules
// including leap years.
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.Local).Day()
}

// IsLastDayOfMonth reports whether the cursor's day is the last day of its
// month.
func (c *CalendarCursor) IsLastDayOfMonth() bool {
	return c.Day() == daysInMonth(c.Year(), c.Month())
}

// IsLastWeekdayOfMonth reports whether the cursor's weekday does not recur
// again within the present month (i.e. this is the last, e.g., Tuesday of
// the month).
func (c *CalendarCursor) IsLastWeekdayOfMonth() bool {
	next := c.t.AddDate(0, 0, 7)
	return next.Month() != c.t.Month()
}

// SetSecond sets the second of the minute. Values >= 60 clamp to 0.
func (c *CalendarCursor) SetSecond(second int) {
	if second >= 60 {
		second = 0
	}
	c.t = time.Date(c.Year(), c.t.Month(), c.Day(), c.Hour(), c.Minute(), second, c.t.Nanosecond(), time.Local)
}

// SetMinute sets the minute of the hour. Values >= 60 clamp to 0.
func (c *CalendarCursor) SetMinute(minute int) {
	if minute >= 60 {
		minute = 0
	}
	c.t = time.Date(c.Year(), c.t.Month(), c.Day(), c.Hour(), minute, c.Second(), c.t.Nanosecond(), time.Local)
}

// SetHour sets the hour of the day. Values >= 24 clamp to 0.
func (c *CalendarCursor) SetHour(hour int) {
	if hour >= 24 {
		hour = 0
	}
	c.t = time.Date(c.Year(), c.t.Month(), c.Day(), hour, c.Minute(), c.Second(), c.t.Nanosecond(), time.Local)
}

// SetTime sets hour, minute and second at once.
func (c *CalendarCursor) SetTime(hour, minute, second int) {
	c.SetHour(hour)
	c.SetMinute(minute)
	c.SetSecond(second)
}

// SetDay sets the day of the month. 0 clamps to 1; a value greater than the
// number of days in the current month clamps to that month's last day
// (honoring leap years).
func (c *CalendarCursor) SetDay(day int) {
	if day == 0 {
		day = 1
	}
	if dim := daysInMonth(c.Year(), c.Month()); day > dim {
		day = dim
	}
	c.t = time.Date(c.Year(), c.t.Month(), day, c.Hour(), c.Minute(), c.Second(), c.t.Nanosecond(), time.Local)
}

// SetMonth sets the month of the year. 0 clamps to 1, values > 12 clamp to
// 12. If the cursor's current day does not exist in the target month (e.g.
// day 31 set into April), the day is clamped to the target month's last
// day before the month changes.
func (c *CalendarCursor) SetMonth(month int) {
	if month == 0 {
		month = 1
	} else if month > 12 {
		month = 12
	}
	day := c.Day()
	if dim := daysInMonth(c.Year(), month); day > dim {
		day = dim
	}
	c.t = time.Date(c.Year(), time.Month(month), day, c.Hour(), c.Minute(), c.Second(), c.t.Nanosecond(), time.Local)
}

// SetMonthDay sets month and day in one step.
func (c *CalendarCursor) SetMonthDay(month, day int) {
	c.SetMonth(month)
	c.SetDay(day)
}

// SetYear sets the year. If the cursor's current (month, day) is invalid
// for the target year (Feb 29 in a non-leap year), the day clamps to 28
// before the year changes.
func (c *CalendarCursor) SetYear(year int) {
	day := c.Day()
	if dim := daysInMonth(year, c.Month()); day > dim {
		day = dim
	}
	c.t = time.Date(year, c.t.Month(), day, c.Hour(), c.Minute(), c.Second(), c.t.Nanosecond(), time.Local)
}

// SetDate sets year, month and day in one step.
func (c *CalendarCursor) SetDate(year, month, day int) {
	c.SetYear(year)
	c.SetMonth(month)
	c.SetDay(day)
}

// SetStartOf aligns the cursor to the beginning of the given unit.
func (c *CalendarCursor) SetStartOf(unit TimeUnit) {
	switch unit {
	case TimeUnitYear:
		c.SetMonth(1)
		c.SetDay(1)
		c.SetTime(0, 0, 0)
	case TimeUnitMonth:
		c.SetDay(1)
		c.SetTime(0, 0, 0)
	case TimeUnitDay:
		c.SetTime(0, 0, 0)
	case TimeUnitHour:
		c.SetMinute(0)
		c.SetSecond(0)
	case TimeUnitMinute:
		c.SetSecond(0)
	case TimeUnitSecond:
		// Only the sub-second part, cleared below for every unit.
	}
	c.t = c.t.Add(-time.Duration(c.t.Nanosecond()))
}

// AddYear advances the cursor by one year and resets it to the start of
// that year.
func (c *CalendarCursor) AddYear() {
	c.t = c.t.AddDate(1, 0, 0)
	c.SetStartOf(TimeUnitYear)
}

// AddMonth advances the cursor by one month and resets it to the start of
// that month.
func (c *CalendarCursor) AddMonth() {
	// Move to day 1 first so that e.g. Jan 31 does not overflow past
	// February.
	c.SetDay(1)
	c.t = c.t.AddDate(0, 1, 0)
	c.SetStartOf(TimeUnitMonth)
}

// AddDay advances the cursor by one day and resets it to the start of that
// day.
func (c *CalendarCursor) AddDay() {
	c.t = c.t.AddDate(0, 0, 1)
	c.SetStartOf(TimeUnitDay)
}

// AddHour advances the cursor by one hour and resets it to the start of
// that hour.
func (c *CalendarCursor) AddHour() {
	c.t = c.t.Add(time.Hour)
	c.SetStartOf(TimeUnitHour)
}

// AddMinute advances the cursor by one minute and resets it to the start
// of that minute.
func (c *CalendarCursor) AddMinute() {
	c.t = c.t.Add(time.Minute)
	c.SetStartOf(TimeUnitMinute)
}

// AddSecond advances the cursor by one second.
func (c *CalendarCursor) AddSecond() {
	c.t = c.t.Add(time.Second)
	c.SetStartOf(TimeUnitSecond)
}
