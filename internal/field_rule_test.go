// Tests for field_rule.go

package calsched_internal

import "testing"

func TestFieldRuleVal(t *testing.T) {
	r := NewValRule(5)
	if !r.Matches(5) {
		t.Fatal("want match on 5")
	}
	if r.Matches(6) {
		t.Fatal("want no match on 6")
	}
}

func TestFieldRuleRange(t *testing.T) {
	r := NewRangeRule(5, 10, 1)
	for _, v := range []int{5, 6, 10} {
		if !r.Matches(v) {
			t.Fatalf("want match on %d", v)
		}
	}
	if r.Matches(11) {
		t.Fatal("want no match on 11")
	}
}

func TestFieldRuleRangeStep(t *testing.T) {
	r := NewRangeRule(5, 10, 2)
	want := map[int]bool{5: true, 6: false, 7: true, 8: false, 9: true, 10: false, 11: false}
	for v, ok := range want {
		if got := r.Matches(v); got != ok {
			t.Fatalf("Matches(%d): want %v, got %v", v, ok, got)
		}
	}
}

func TestFieldRuleWrappingRange(t *testing.T) {
	// a week where 0 is Sunday and 6 is Saturday: a range from 5 to 2
	// should match 5, 6, 0, 1, 2 (and anything >= 5, since there is no
	// implicit maximum on the rule itself).
	r := NewRangeRule(5, 2, 1)
	for _, v := range []int{5, 6, 0, 1, 2, 7} {
		if !r.Matches(v) {
			t.Fatalf("want match on %d", v)
		}
	}
	for _, v := range []int{3, 4} {
		if r.Matches(v) {
			t.Fatalf("want no match on %d", v)
		}
	}
}

func TestFieldRuleMany(t *testing.T) {
	r := NewManyRule(5, 10, 15)
	for _, v := range []int{5, 10, 15} {
		if !r.Matches(v) {
			t.Fatalf("want match on %d", v)
		}
	}
	if r.Matches(11) {
		t.Fatal("want no match on 11")
	}
}

func TestFieldRuleRanges(t *testing.T) {
	r := NewRangesRule([3]int{5, 10, 1}, [3]int{15, 20, 1})
	for _, v := range []int{5, 6, 10, 15, 20} {
		if !r.Matches(v) {
			t.Fatalf("want match on %d", v)
		}
	}
	if r.Matches(11) {
		t.Fatal("want no match on 11")
	}
}

func TestFieldRuleValueIsBetween(t *testing.T) {
	if !NewValRule(5).valueIsBetween(1, 12) {
		t.Fatal("5 should be between 1 and 12")
	}
	if NewValRule(13).valueIsBetween(1, 12) {
		t.Fatal("13 should not be between 1 and 12")
	}
	if !NewManyRule(1, 2, 3).valueIsBetween(1, 12) {
		t.Fatal("{1,2,3} should be between 1 and 12")
	}
	if NewManyRule(1, 2, 30).valueIsBetween(1, 12) {
		t.Fatal("{1,2,30} should not be between 1 and 12")
	}
}
