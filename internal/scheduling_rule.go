// Scheduling rule: the top-level "when" a task fires, one of a one-shot
// instant, a calendar recurrence, or a delegated cron expression.

package calsched_internal

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

type schedulingRuleKind int

const (
	schedulingRuleKindOnce schedulingRuleKind = iota
	schedulingRuleKindRecur
	schedulingRuleKindCron
)

// SchedulingRule is the top-level rule a task is scheduled against: a
// single instant (Once), a calendar recurrence (Recur), or a cron
// expression delegated to an external parser (Cron).
type SchedulingRule struct {
	kind     schedulingRuleKind
	once     time.Time
	recur    *RecurrenceRuleSet
	cronExpr string
	cronSch  cron.Schedule
}

// OnceRule builds a SchedulingRule that fires exactly once, at t.
func OnceRule(t time.Time) SchedulingRule {
	return SchedulingRule{kind: schedulingRuleKindOnce, once: t}
}

// RecurRule builds a SchedulingRule that fires on every match of rs.
func RecurRule(rs *RecurrenceRuleSet) SchedulingRule {
	return SchedulingRule{kind: schedulingRuleKindRecur, recur: rs}
}

// CronRule builds a SchedulingRule from a standard five-field cron
// expression. Parsing (not occurrence computation) is the only place this
// can fail.
func CronRule(expr string) (SchedulingRule, error) {
	sch, err := cron.ParseStandard(expr)
	if err != nil {
		return SchedulingRule{}, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return SchedulingRule{kind: schedulingRuleKindCron, cronExpr: expr, cronSch: sch}, nil
}

// NextFrom returns the earliest time strictly after base at which the rule
// fires, or false if the rule can never fire again (Once rules are
// exhausted the first time they are consumed; Recur rules report false for
// an invalid or unsatisfiable rule set, per RecurrenceRuleSet.IsValid).
func (r SchedulingRule) NextFrom(base time.Time) (time.Time, bool) {
	switch r.kind {
	case schedulingRuleKindOnce:
		if r.once.After(base) {
			return r.once, true
		}
		return time.Time{}, false
	case schedulingRuleKindRecur:
		return r.recur.NextMatchFrom(base)
	case schedulingRuleKindCron:
		// cron.Schedule.Next is the only capability consumed from the
		// delegated cron engine: the next occurrence strictly after base.
		next := r.cronSch.Next(base)
		if next.IsZero() {
			return time.Time{}, false
		}
		return next, true
	default:
		return time.Time{}, false
	}
}

// IsOnce reports whether the rule is a one-shot instant.
func (r SchedulingRule) IsOnce() bool { return r.kind == schedulingRuleKindOnce }

func (r SchedulingRule) String() string {
	switch r.kind {
	case schedulingRuleKindOnce:
		return fmt.Sprintf("Once(%s)", r.once)
	case schedulingRuleKindRecur:
		return fmt.Sprintf("Recur(%s)", r.recur)
	case schedulingRuleKindCron:
		return fmt.Sprintf("Cron(%q)", r.cronExpr)
	default:
		return "SchedulingRule(invalid)"
	}
}
