package calsched_internal

import (
	"errors"
	"fmt"
)

// ErrTaskNotFound is returned (wrapped with the task name) when Stop,
// Resume or Remove is called with a name that is not currently scheduled.
var ErrTaskNotFound = errors.New("task not found")

// ErrTaskAlreadyExists is returned (wrapped with the task name) when
// Schedule or ScheduleManyRules is called with a name that is already
// scheduled. The existing task is left running untouched.
var ErrTaskAlreadyExists = errors.New("task already exists")

// ErrRuleNeverFires is returned by both substrates' Schedule methods when
// none of the given rules will ever produce an occurrence (e.g. an Once
// rule already in the past, or an invalid RecurrenceRuleSet).
var ErrRuleNeverFires = errors.New("scheduling rule never fires")

func errTaskNotFound(name string) error {
	return fmt.Errorf("%w: %s", ErrTaskNotFound, name)
}

func errTaskAlreadyExists(name string) error {
	return fmt.Errorf("%w: %s", ErrTaskAlreadyExists, name)
}

func errRuleNeverFires(name string) error {
	return fmt.Errorf("%w: %s", ErrRuleNeverFires, name)
}
