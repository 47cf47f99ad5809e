// Fluent builder methods for RecurrenceRuleSet: general per-field setters
// plus convenience methods for the common shapes (a single value, a
// weekday range, a time of day, a calendar date).

package calsched_internal

// SecondsRule sets the general second-of-minute rule.
func (rs *RecurrenceRuleSet) SecondsRule(r FieldRule[int]) *RecurrenceRuleSet {
	rs.second = &r
	return rs
}

// MinutesRule sets the general minute-of-hour rule.
func (rs *RecurrenceRuleSet) MinutesRule(r FieldRule[int]) *RecurrenceRuleSet {
	rs.minute = &r
	return rs
}

// HoursRule sets the general hour-of-day rule.
func (rs *RecurrenceRuleSet) HoursRule(r FieldRule[int]) *RecurrenceRuleSet {
	rs.hour = &r
	return rs
}

// DowRule sets the general day-of-week rule (0=Sunday..6=Saturday).
func (rs *RecurrenceRuleSet) DowRule(r FieldRule[int]) *RecurrenceRuleSet {
	rs.dow = &r
	return rs
}

// DayRule sets the general day-of-month rule.
func (rs *RecurrenceRuleSet) DayRule(r FieldRule[int]) *RecurrenceRuleSet {
	rs.day = &r
	return rs
}

// MonthRule sets the general month-of-year rule (1=January..12=December).
func (rs *RecurrenceRuleSet) MonthRule(r FieldRule[int]) *RecurrenceRuleSet {
	rs.month = &r
	return rs
}

// YearRule sets the general year rule.
func (rs *RecurrenceRuleSet) YearRule(r FieldRule[int]) *RecurrenceRuleSet {
	rs.year = &r
	return rs
}

// TimeRule sets hour, minute and second rules together.
func (rs *RecurrenceRuleSet) TimeRule(hour, minute, second FieldRule[int]) *RecurrenceRuleSet {
	rs.hour, rs.minute, rs.second = &hour, &minute, &second
	return rs
}

// AtSecond constrains the rule set to a single second of the minute.
func (rs *RecurrenceRuleSet) AtSecond(second int) *RecurrenceRuleSet {
	return rs.SecondsRule(NewValRule(second))
}

// AtMinute constrains the rule set to a single minute of the hour.
func (rs *RecurrenceRuleSet) AtMinute(minute int) *RecurrenceRuleSet {
	return rs.MinutesRule(NewValRule(minute))
}

// AtHour constrains the rule set to a single hour of the day.
func (rs *RecurrenceRuleSet) AtHour(hour int) *RecurrenceRuleSet {
	return rs.HoursRule(NewValRule(hour))
}

// AtTime constrains the rule set to a single time of day.
func (rs *RecurrenceRuleSet) AtTime(hour, minute, second int) *RecurrenceRuleSet {
	rs.AtHour(hour)
	rs.AtMinute(minute)
	rs.AtSecond(second)
	return rs
}

// OnWeekday constrains the rule set to a single day of the week.
func (rs *RecurrenceRuleSet) OnWeekday(weekday int) *RecurrenceRuleSet {
	return rs.DowRule(NewValRule(weekday))
}

// OnDow is an alias for OnWeekday.
func (rs *RecurrenceRuleSet) OnDow(dow int) *RecurrenceRuleSet {
	return rs.OnWeekday(dow)
}

// FromToWeekdays constrains the rule set to a (possibly wrap-around) range
// of weekdays. A range where from == to is a no-op, since a single-day
// range is better expressed with OnWeekday.
func (rs *RecurrenceRuleSet) FromToWeekdays(from, to int) *RecurrenceRuleSet {
	if from == to {
		return rs
	}
	return rs.DowRule(NewRangeRule(from, to, 1))
}

// FromToDow is an alias for FromToWeekdays.
func (rs *RecurrenceRuleSet) FromToDow(from, to int) *RecurrenceRuleSet {
	return rs.FromToWeekdays(from, to)
}

// OnDay constrains the rule set to a single day of the month.
func (rs *RecurrenceRuleSet) OnDay(day int) *RecurrenceRuleSet {
	return rs.DayRule(NewValRule(day))
}

// InMonth constrains the rule set to a single month of the year.
func (rs *RecurrenceRuleSet) InMonth(month int) *RecurrenceRuleSet {
	return rs.MonthRule(NewValRule(month))
}

// InYear constrains the rule set to a single year.
func (rs *RecurrenceRuleSet) InYear(year int) *RecurrenceRuleSet {
	return rs.YearRule(NewValRule(year))
}

// OnDate constrains the rule set to a single full calendar date: year,
// month and day.
func (rs *RecurrenceRuleSet) OnDate(year, month, day int) *RecurrenceRuleSet {
	rs.InYear(year)
	rs.InMonth(month)
	rs.OnDay(day)
	return rs
}

// OnDatetime constrains the rule set to a single full calendar date and
// time.
func (rs *RecurrenceRuleSet) OnDatetime(year, month, day, hour, minute, second int) *RecurrenceRuleSet {
	rs.OnDate(year, month, day)
	rs.AtTime(hour, minute, second)
	return rs
}
