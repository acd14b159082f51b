package lifecycle

import (
	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/domain/workflow"
)

// Triggers for the four entity lifecycles
const (
	TriggerApprove  workflow.Trigger = "approve"
	TriggerReject   workflow.Trigger = "reject"
	TriggerAssign   workflow.Trigger = "assign"
	TriggerResolve  workflow.Trigger = "resolve"
	TriggerClose    workflow.Trigger = "close"
	TriggerStart    workflow.Trigger = "start"
	TriggerComplete workflow.Trigger = "complete"
	TriggerCheckOut workflow.Trigger = "check_out"
)

// BookingStateMachine builds the booking decision machine. Approved and
// rejected are terminal.
func BookingStateMachine(initial workflow.State) workflow.StateMachine {
	builder := workflow.NewBuilder()

	builder.Configure(workflow.State(entity.BookingStatusPending)).
		Permit(TriggerApprove, workflow.State(entity.BookingStatusApproved)).
		Permit(TriggerReject, workflow.State(entity.BookingStatusRejected))

	return builder.Build(initial)
}

// IncidentStateMachine builds the incident machine. Assignment is
// optional; resolve is legal from open or in-progress. The lifecycle is
// forward-only and closed is terminal.
func IncidentStateMachine(initial workflow.State) workflow.StateMachine {
	builder := workflow.NewBuilder()

	builder.Configure(workflow.State(entity.IncidentStatusOpen)).
		Permit(TriggerAssign, workflow.State(entity.IncidentStatusInProgress)).
		Permit(TriggerResolve, workflow.State(entity.IncidentStatusResolved))

	builder.Configure(workflow.State(entity.IncidentStatusInProgress)).
		Permit(TriggerResolve, workflow.State(entity.IncidentStatusResolved))

	builder.Configure(workflow.State(entity.IncidentStatusResolved)).
		Permit(TriggerClose, workflow.State(entity.IncidentStatusClosed))

	return builder.Build(initial)
}

// TaskStateMachine builds the task machine. No transition skips a state;
// completed is terminal.
func TaskStateMachine(initial workflow.State) workflow.StateMachine {
	builder := workflow.NewBuilder()

	builder.Configure(workflow.State(entity.TaskStatusPending)).
		Permit(TriggerStart, workflow.State(entity.TaskStatusInProgress))

	builder.Configure(workflow.State(entity.TaskStatusInProgress)).
		Permit(TriggerComplete, workflow.State(entity.TaskStatusCompleted))

	return builder.Build(initial)
}

// TimesheetStateMachine builds the timesheet machine. Check-in creates
// the record directly in active; completed is terminal.
func TimesheetStateMachine(initial workflow.State) workflow.StateMachine {
	builder := workflow.NewBuilder()

	builder.Configure(workflow.State(entity.TimesheetStatusActive)).
		Permit(TriggerCheckOut, workflow.State(entity.TimesheetStatusCompleted))

	return builder.Build(initial)
}
