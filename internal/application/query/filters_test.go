package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seatbook/seatbook/internal/domain/entity"
)

func TestPendingOnly(t *testing.T) {
	bookings := []*entity.BookingRequest{
		{ID: "bk-1", Status: entity.BookingStatusPending},
		{ID: "bk-2", Status: entity.BookingStatusApproved},
		{ID: "bk-3", Status: entity.BookingStatusRejected},
		{ID: "bk-4", Status: entity.BookingStatusPending},
	}

	got := PendingOnly(bookings)
	assert.Len(t, got, 2)
	assert.Equal(t, "bk-1", got[0].ID)
	assert.Equal(t, "bk-4", got[1].ID)
}

func TestMineOnly(t *testing.T) {
	bookings := []*entity.BookingRequest{
		{ID: "bk-1", EmployeeID: "emp-a"},
		{ID: "bk-2", EmployeeID: "emp-b"},
	}
	timesheets := []*entity.Timesheet{
		{ID: "ts-1", EmployeeID: "emp-a"},
		{ID: "ts-2", EmployeeID: "emp-a"},
		{ID: "ts-3", EmployeeID: "emp-b"},
	}

	assert.Len(t, MineOnly(bookings, "emp-a"), 1)
	assert.Len(t, MineOnly(timesheets, "emp-a"), 2)
	assert.Empty(t, MineOnly(bookings, "emp-z"))
}

func TestOpenOrInProgress(t *testing.T) {
	incidents := []*entity.Incident{
		{ID: "inc-1", Status: entity.IncidentStatusOpen},
		{ID: "inc-2", Status: entity.IncidentStatusInProgress},
		{ID: "inc-3", Status: entity.IncidentStatusResolved},
		{ID: "inc-4", Status: entity.IncidentStatusClosed},
	}

	got := OpenOrInProgress(incidents)
	assert.Len(t, got, 2)
	assert.Equal(t, "inc-1", got[0].ID)
	assert.Equal(t, "inc-2", got[1].ID)
}

func TestAssignedTo(t *testing.T) {
	tasks := []*entity.Task{
		{ID: "tk-1", AssignedTo: "emp-a"},
		{ID: "tk-2", AssignedTo: "emp-b"},
		{ID: "tk-3", AssignedTo: "emp-a"},
	}

	got := AssignedTo(tasks, "emp-a")
	assert.Len(t, got, 2)
	assert.Empty(t, AssignedTo(tasks, "emp-z"))
}

func TestFiltersDoNotMutateInput(t *testing.T) {
	bookings := []*entity.BookingRequest{
		{ID: "bk-1", Status: entity.BookingStatusPending},
		{ID: "bk-2", Status: entity.BookingStatusApproved},
	}

	_ = PendingOnly(bookings)
	assert.Len(t, bookings, 2)
	assert.Equal(t, entity.BookingStatusApproved, bookings[1].Status)
}
