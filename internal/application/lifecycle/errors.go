package lifecycle

import (
	"errors"

	"github.com/seatbook/seatbook/internal/domain/workflow"
)

var (
	// ErrInvalidState is returned when a transition is not defined for
	// the entity's current status
	ErrInvalidState = workflow.ErrInvalidTransition

	// ErrInvalidInput is returned when a required payload field is
	// missing or empty
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyActive is returned on check-in while the employee
	// already has an active timesheet
	ErrAlreadyActive = errors.New("timesheet already active")

	// ErrNotActive is returned on check-out when the employee has no
	// active timesheet
	ErrNotActive = errors.New("no active timesheet")
)
