// Recurrence rule set: a calendar pattern built from independent per-field
// rules (second, minute, hour, day of week, day of month, month, year),
// matched by advancing a CalendarCursor field by field.

package calsched_internal

import (
	"fmt"
	"time"
)

// maxNextMatchSteps bounds the field-advance search in NextMatchFrom. Each
// step advances the cursor by one unit of the coarsest mismatching field
// (a year, month, day, hour, minute or second) and resets the finer
// fields, so even a rule set that only matches decades out converges well
// within this bound. It guards against a rule set that IsValid accepts but
// that never matches (e.g. a single year already in the past) spinning
// forever.
const maxNextMatchSteps = 200_000

// RecurrenceRuleSet matches a point in time against a set of calendar
// field rules. Every field is optional; an unset field matches anything.
// The zero value has no field set, so IsValid reports false and
// NextMatchFrom finds no match — use NewRecurrenceRuleSet and the builder
// methods to constrain at least one field.
type RecurrenceRuleSet struct {
	second *FieldRule[int]
	minute *FieldRule[int]
	hour   *FieldRule[int]
	dow    *FieldRule[int]
	day    *FieldRule[int]
	month  *FieldRule[int]
	year   *FieldRule[int]
}

// NewRecurrenceRuleSet returns an empty rule set (every field unset). Use
// the builder methods on the result to constrain it.
func NewRecurrenceRuleSet() *RecurrenceRuleSet {
	return &RecurrenceRuleSet{}
}

// IsValid reports whether the rule set has at least one field set and every
// set field's possible values lie within that field's calendar domain. When
// both month and day are set, day is additionally bounded by the shortest
// month the month rule can match (Feb: <=29, Apr/Jun/Sep/Nov: <=30, else
// <=31) — mirroring the original ruleset builder's month/day cross-check.
func (rs *RecurrenceRuleSet) IsValid() bool {
	if rs.second == nil && rs.minute == nil && rs.hour == nil &&
		rs.dow == nil && rs.day == nil && rs.month == nil && rs.year == nil {
		return false
	}
	if rs.second != nil && !rs.second.valueIsBetween(0, 59) {
		return false
	}
	if rs.minute != nil && !rs.minute.valueIsBetween(0, 59) {
		return false
	}
	if rs.hour != nil && !rs.hour.valueIsBetween(0, 23) {
		return false
	}
	if rs.dow != nil && !rs.dow.valueIsBetween(0, 6) {
		return false
	}
	if rs.month != nil && !rs.month.valueIsBetween(1, 12) {
		return false
	}
	if rs.day != nil {
		switch {
		case rs.month == nil:
			if !rs.day.valueIsBetween(1, 31) {
				return false
			}
		case rs.month.Matches(2):
			if !rs.day.valueIsBetween(1, 29) {
				return false
			}
		case rs.month.Matches(4) || rs.month.Matches(6) || rs.month.Matches(9) || rs.month.Matches(11):
			if !rs.day.valueIsBetween(1, 30) {
				return false
			}
		default:
			if !rs.day.valueIsBetween(1, 31) {
				return false
			}
		}
	}
	return true
}

// NextMatchFrom returns the earliest point in time strictly after base
// that matches the rule set, along with true. It returns false if the rule
// set is invalid (IsValid), or if no match is found within a bounded search
// (an unsatisfiable but individually-valid rule set, e.g. day=30 restricted
// to month=2 would be caught by IsValid already, but the bound also guards
// any combination IsValid doesn't catch).
func (rs *RecurrenceRuleSet) NextMatchFrom(base time.Time) (time.Time, bool) {
	if !rs.IsValid() {
		return time.Time{}, false
	}

	cursor := NewCalendarCursor(base)
	cursor.AddSecond()

	for step := 0; step < maxNextMatchSteps; step++ {
		if rs.year != nil && !rs.year.Matches(cursor.Year()) {
			cursor.AddYear()
			continue
		}
		if rs.month != nil && !rs.month.Matches(cursor.Month()) {
			cursor.AddMonth()
			continue
		}
		if rs.day != nil && !rs.day.Matches(cursor.Day()) {
			cursor.AddDay()
			continue
		}
		if rs.dow != nil && !rs.dow.Matches(cursor.Weekday()) {
			cursor.AddDay()
			continue
		}
		if rs.hour != nil && !rs.hour.Matches(cursor.Hour()) {
			cursor.AddHour()
			continue
		}
		if rs.minute != nil && !rs.minute.Matches(cursor.Minute()) {
			cursor.AddMinute()
			continue
		}
		if rs.second != nil && !rs.second.Matches(cursor.Second()) {
			cursor.AddSecond()
			continue
		}
		return cursor.Time(), true
	}
	return time.Time{}, false
}

// NextMatch returns the earliest match strictly after the current time.
func (rs *RecurrenceRuleSet) NextMatch() (time.Time, bool) {
	return rs.NextMatchFrom(time.Now())
}

func (rs *RecurrenceRuleSet) String() string {
	return fmt.Sprintf(
		"RecurrenceRuleSet{second:%v minute:%v hour:%v dow:%v day:%v month:%v year:%v}",
		rs.second, rs.minute, rs.hour, rs.dow, rs.day, rs.month, rs.year,
	)
}
