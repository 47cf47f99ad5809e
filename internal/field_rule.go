// Field rule: a one-dimensional integer matcher used by RecurrenceRuleSet.

package calsched_internal

// FieldRuleValue is the set of integer kinds a FieldRule may be built
// over. RecurrenceRuleSet uses int for every calendar field.
type FieldRuleValue interface {
	~int | ~int32 | ~int64
}

// FieldRule matches a single calendar field (second, minute, hour, day of
// week, day of month, month or year) against one of four shapes:
//   - Val: a single value
//   - Range: a stepped arithmetic range, with wrap-around when start > end
//   - Many: an explicit set of values
//   - Ranges: a union of Range shapes
//
// The zero value is a Val rule matching 0; construct one with NewValRule,
// NewRangeRule, NewManyRule or NewRangesRule.
type FieldRule[T FieldRuleValue] struct {
	kind   fieldRuleKind
	val    T
	start  T
	end    T
	step   T
	many   []T
	ranges []fieldRange[T]
}

type fieldRuleKind int

const (
	fieldRuleKindVal fieldRuleKind = iota
	fieldRuleKindRange
	fieldRuleKindMany
	fieldRuleKindRanges
)

type fieldRange[T FieldRuleValue] struct {
	start, end, step T
}

// NewValRule builds a FieldRule matching exactly one value.
func NewValRule[T FieldRuleValue](v T) FieldRule[T] {
	return FieldRule[T]{kind: fieldRuleKindVal, val: v}
}

// NewRangeRule builds a FieldRule matching a stepped range from start to
// end. If start > end the range wraps around: it matches any value >=
// start OR <= end (no implicit domain maximum is assumed).
func NewRangeRule[T FieldRuleValue](start, end, step T) FieldRule[T] {
	return FieldRule[T]{kind: fieldRuleKindRange, start: start, end: end, step: step}
}

// NewManyRule builds a FieldRule matching any of the given values.
func NewManyRule[T FieldRuleValue](values ...T) FieldRule[T] {
	vs := make([]T, len(values))
	copy(vs, values)
	return FieldRule[T]{kind: fieldRuleKindMany, many: vs}
}

// NewRangesRule builds a FieldRule matching the union of the given
// (start, end, step) ranges.
func NewRangesRule[T FieldRuleValue](ranges ...[3]T) FieldRule[T] {
	rs := make([]fieldRange[T], len(ranges))
	for i, r := range ranges {
		rs[i] = fieldRange[T]{start: r[0], end: r[1], step: r[2]}
	}
	return FieldRule[T]{kind: fieldRuleKindRanges, ranges: rs}
}

// Matches reports whether x satisfies the rule.
func (r FieldRule[T]) Matches(x T) bool {
	switch r.kind {
	case fieldRuleKindVal:
		return x == r.val
	case fieldRuleKindRange:
		return matchesRange(r.start, r.end, r.step, x)
	case fieldRuleKindMany:
		for _, v := range r.many {
			if v == x {
				return true
			}
		}
		return false
	case fieldRuleKindRanges:
		for _, rg := range r.ranges {
			if matchesRange(rg.start, rg.end, rg.step, x) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func matchesRange[T FieldRuleValue](start, end, step, x T) bool {
	if start == end {
		return x == start
	}
	var zero, one T = 0, 1
	if step == zero || step == one {
		if start < end {
			return x >= start && x <= end
		}
		return x >= start || x <= end
	}
	if start < end {
		return x >= start && x <= end && (x-start)%step == zero
	}
	return (x >= start || x <= end) && (start-x)%step == zero
}

// valueIsBetween reports whether every value the rule can possibly match
// lies within [min, max]. Used by RecurrenceRuleSet.IsValid; it does not
// itself guard against malformed Range bounds (those are the caller's
// responsibility).
func (r FieldRule[T]) valueIsBetween(min, max T) bool {
	switch r.kind {
	case fieldRuleKindVal:
		return r.val >= min && r.val <= max
	case fieldRuleKindRange:
		return r.start >= min && r.end <= max
	case fieldRuleKindMany:
		for _, v := range r.many {
			if v < min || v > max {
				return false
			}
		}
		return true
	case fieldRuleKindRanges:
		for _, rg := range r.ranges {
			if rg.start < min || rg.end > max {
				return false
			}
		}
		return true
	default:
		return true
	}
}
