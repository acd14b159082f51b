package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a trigger is not defined for
	// the machine's current state
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrGuardFailed is returned when every candidate transition is
	// blocked by its guard condition
	ErrGuardFailed = errors.New("guard condition failed")
)
