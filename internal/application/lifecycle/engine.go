// Package lifecycle is the state-machine core: given the current entity
// and a requested action it computes the full next-state patch, or a
// typed error. It holds no persistent state and performs no I/O; the
// caller applies the patch through the store.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/domain/workflow"
)

// BookingPatch is the computed next state of a booking decision. A nil
// Reason clears any stored rejection reason.
type BookingPatch struct {
	Status string
	Reason *string
}

// IncidentPatch is the computed next state of an incident transition
type IncidentPatch struct {
	Status     string
	AssignedTo string
	ResolvedAt *time.Time
}

// TaskPatch is the computed next state of a task transition
type TaskPatch struct {
	Status      string
	CompletedAt *time.Time
}

// TimesheetPatch is the computed next state of a timesheet check-out
type TimesheetPatch struct {
	Status       string
	CheckOut     string
	WorkingHours float64
}

// ApproveBooking computes the patch for approving a pending booking
func ApproveBooking(ctx context.Context, b *entity.BookingRequest) (*BookingPatch, error) {
	machine := BookingStateMachine(workflow.State(b.Status))
	if err := machine.Fire(ctx, TriggerApprove); err != nil {
		return nil, err
	}

	return &BookingPatch{Status: entity.BookingStatusApproved, Reason: nil}, nil
}

// RejectBooking computes the patch for rejecting a pending booking. The
// reason must be non-empty after trimming.
func RejectBooking(ctx context.Context, b *entity.BookingRequest, reason string) (*BookingPatch, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}

	machine := BookingStateMachine(workflow.State(b.Status))
	if err := machine.Fire(ctx, TriggerReject); err != nil {
		return nil, err
	}

	return &BookingPatch{Status: entity.BookingStatusRejected, Reason: &reason}, nil
}

// AssignIncident computes the patch for assigning an open incident
func AssignIncident(ctx context.Context, in *entity.Incident, assignee string) (*IncidentPatch, error) {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return nil, fmt.Errorf("%w: assignee is required", ErrInvalidInput)
	}

	machine := IncidentStateMachine(workflow.State(in.Status))
	if err := machine.Fire(ctx, TriggerAssign); err != nil {
		return nil, err
	}

	return &IncidentPatch{Status: entity.IncidentStatusInProgress, AssignedTo: assignee}, nil
}

// ResolveIncident computes the patch for resolving an incident. Legal
// from open or in-progress; stamps the resolution time.
func ResolveIncident(ctx context.Context, in *entity.Incident, now time.Time) (*IncidentPatch, error) {
	machine := IncidentStateMachine(workflow.State(in.Status))
	if err := machine.Fire(ctx, TriggerResolve); err != nil {
		return nil, err
	}

	resolvedAt := now.UTC()
	return &IncidentPatch{
		Status:     entity.IncidentStatusResolved,
		AssignedTo: in.AssignedTo,
		ResolvedAt: &resolvedAt,
	}, nil
}

// CloseIncident computes the patch for closing a resolved incident.
// ResolvedAt is left as stamped; the lifecycle is forward-only.
func CloseIncident(ctx context.Context, in *entity.Incident) (*IncidentPatch, error) {
	machine := IncidentStateMachine(workflow.State(in.Status))
	if err := machine.Fire(ctx, TriggerClose); err != nil {
		return nil, err
	}

	return &IncidentPatch{Status: entity.IncidentStatusClosed, AssignedTo: in.AssignedTo}, nil
}

// StartTask computes the patch for moving a pending task in-progress
func StartTask(ctx context.Context, t *entity.Task) (*TaskPatch, error) {
	machine := TaskStateMachine(workflow.State(t.Status))
	if err := machine.Fire(ctx, TriggerStart); err != nil {
		return nil, err
	}

	return &TaskPatch{Status: entity.TaskStatusInProgress}, nil
}

// CompleteTask computes the patch for completing an in-progress task.
// Completing directly from pending is rejected.
func CompleteTask(ctx context.Context, t *entity.Task, now time.Time) (*TaskPatch, error) {
	machine := TaskStateMachine(workflow.State(t.Status))
	if err := machine.Fire(ctx, TriggerComplete); err != nil {
		return nil, err
	}

	completedAt := now.UTC()
	return &TaskPatch{Status: entity.TaskStatusCompleted, CompletedAt: &completedAt}, nil
}

// CheckIn validates that a new timesheet may be opened for an employee.
// active is the employee's currently active timesheet, or nil. The store
// does not enforce the single-active rule; this is the only place it
// lives.
func CheckIn(active *entity.Timesheet) error {
	if active != nil && active.Status == entity.TimesheetStatusActive {
		return fmt.Errorf("%w: employee %s checked in at %s", ErrAlreadyActive, active.EmployeeID, active.CheckIn)
	}
	return nil
}

// CheckOut computes the patch for closing an active timesheet. Working
// hours are the wall-clock difference between check-in and now, floored
// at zero and stored unrounded.
func CheckOut(ctx context.Context, ts *entity.Timesheet, now time.Time) (*TimesheetPatch, error) {
	if ts == nil || ts.Status != entity.TimesheetStatusActive {
		return nil, ErrNotActive
	}

	machine := TimesheetStateMachine(workflow.State(ts.Status))
	if err := machine.Fire(ctx, TriggerCheckOut); err != nil {
		return nil, err
	}

	checkOut := now.Format("15:04:05")
	hours, err := workingHours(ts.CheckIn, checkOut)
	if err != nil {
		return nil, err
	}

	return &TimesheetPatch{
		Status:       entity.TimesheetStatusCompleted,
		CheckOut:     checkOut,
		WorkingHours: hours,
	}, nil
}

// clockLayouts are the accepted wall-clock formats for check-in/out strings
var clockLayouts = []string{"15:04:05", "15:04"}

func parseClock(s string) (time.Time, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad clock time %q", ErrInvalidInput, s)
}

// workingHours returns the hours between two same-day clock strings,
// never negative
func workingHours(in, out string) (float64, error) {
	start, err := parseClock(in)
	if err != nil {
		return 0, err
	}
	end, err := parseClock(out)
	if err != nil {
		return 0, err
	}

	hours := end.Sub(start).Hours()
	if hours < 0 {
		hours = 0
	}
	return hours, nil
}
