package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seatbook/seatbook/internal/domain/entity"
)

func TestApproveBooking(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantStatus string
		wantErr    error
	}{
		{"from pending", entity.BookingStatusPending, entity.BookingStatusApproved, nil},
		{"from approved", entity.BookingStatusApproved, "", ErrInvalidState},
		{"from rejected", entity.BookingStatusRejected, "", ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &entity.BookingRequest{ID: "bk-1", Status: tt.status}
			patch, err := ApproveBooking(context.Background(), b)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ApproveBooking() error = %v, want %v", err, tt.wantErr)
				}
				if patch != nil {
					t.Errorf("ApproveBooking() patch = %+v, want nil", patch)
				}
				return
			}

			if err != nil {
				t.Fatalf("ApproveBooking() unexpected error: %v", err)
			}
			if patch.Status != tt.wantStatus {
				t.Errorf("patch.Status = %v, want %v", patch.Status, tt.wantStatus)
			}
			if patch.Reason != nil {
				t.Errorf("patch.Reason = %v, want nil (approval clears reason)", *patch.Reason)
			}
		})
	}
}

func TestRejectBooking(t *testing.T) {
	b := &entity.BookingRequest{ID: "bk-1", Status: entity.BookingStatusPending}

	patch, err := RejectBooking(context.Background(), b, "  seat under maintenance ")
	if err != nil {
		t.Fatalf("RejectBooking() unexpected error: %v", err)
	}
	if patch.Status != entity.BookingStatusRejected {
		t.Errorf("patch.Status = %v, want rejected", patch.Status)
	}
	if patch.Reason == nil || *patch.Reason != "seat under maintenance" {
		t.Errorf("patch.Reason = %v, want trimmed reason", patch.Reason)
	}
}

func TestRejectBooking_EmptyReason(t *testing.T) {
	for _, reason := range []string{"", "   ", "\t\n"} {
		b := &entity.BookingRequest{ID: "bk-1", Status: entity.BookingStatusPending}
		if _, err := RejectBooking(context.Background(), b, reason); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("RejectBooking(%q) error = %v, want ErrInvalidInput", reason, err)
		}
	}
}

func TestRejectBooking_Decided(t *testing.T) {
	b := &entity.BookingRequest{ID: "bk-1", Status: entity.BookingStatusApproved}
	if _, err := RejectBooking(context.Background(), b, "too late"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("RejectBooking() from approved error = %v, want ErrInvalidState", err)
	}
}

func TestAssignIncident(t *testing.T) {
	in := &entity.Incident{ID: "inc-1", Status: entity.IncidentStatusOpen}

	patch, err := AssignIncident(context.Background(), in, "emp-b")
	if err != nil {
		t.Fatalf("AssignIncident() unexpected error: %v", err)
	}
	if patch.Status != entity.IncidentStatusInProgress {
		t.Errorf("patch.Status = %v, want in-progress", patch.Status)
	}
	if patch.AssignedTo != "emp-b" {
		t.Errorf("patch.AssignedTo = %v, want emp-b", patch.AssignedTo)
	}

	if _, err := AssignIncident(context.Background(), in, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("AssignIncident() with blank assignee error = %v, want ErrInvalidInput", err)
	}

	resolved := &entity.Incident{ID: "inc-2", Status: entity.IncidentStatusResolved}
	if _, err := AssignIncident(context.Background(), resolved, "emp-b"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("AssignIncident() from resolved error = %v, want ErrInvalidState", err)
	}
}

func TestResolveIncident(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	for _, status := range []string{entity.IncidentStatusOpen, entity.IncidentStatusInProgress} {
		in := &entity.Incident{ID: "inc-1", Status: status, AssignedTo: "emp-b"}
		patch, err := ResolveIncident(context.Background(), in, now)
		if err != nil {
			t.Fatalf("ResolveIncident() from %s unexpected error: %v", status, err)
		}
		if patch.Status != entity.IncidentStatusResolved {
			t.Errorf("patch.Status = %v, want resolved", patch.Status)
		}
		if patch.ResolvedAt == nil || !patch.ResolvedAt.Equal(now) {
			t.Errorf("patch.ResolvedAt = %v, want %v", patch.ResolvedAt, now)
		}
	}
}

func TestResolveIncident_Idempotent(t *testing.T) {
	in := &entity.Incident{ID: "inc-1", Status: entity.IncidentStatusResolved}
	if _, err := ResolveIncident(context.Background(), in, time.Now()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second resolve error = %v, want ErrInvalidState", err)
	}
}

func TestCloseIncident(t *testing.T) {
	in := &entity.Incident{ID: "inc-1", Status: entity.IncidentStatusResolved}
	patch, err := CloseIncident(context.Background(), in)
	if err != nil {
		t.Fatalf("CloseIncident() unexpected error: %v", err)
	}
	if patch.Status != entity.IncidentStatusClosed {
		t.Errorf("patch.Status = %v, want closed", patch.Status)
	}

	open := &entity.Incident{ID: "inc-2", Status: entity.IncidentStatusOpen}
	if _, err := CloseIncident(context.Background(), open); !errors.Is(err, ErrInvalidState) {
		t.Errorf("CloseIncident() from open error = %v, want ErrInvalidState", err)
	}
}

func TestTaskLifecycle(t *testing.T) {
	now := time.Date(2025, 3, 1, 17, 0, 0, 0, time.UTC)

	task := &entity.Task{ID: "tk-1", Status: entity.TaskStatusPending}

	// pending cannot jump directly to completed
	if _, err := CompleteTask(context.Background(), task, now); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("CompleteTask() from pending error = %v, want ErrInvalidState", err)
	}

	patch, err := StartTask(context.Background(), task)
	if err != nil {
		t.Fatalf("StartTask() unexpected error: %v", err)
	}
	if patch.Status != entity.TaskStatusInProgress {
		t.Errorf("patch.Status = %v, want in-progress", patch.Status)
	}

	task.Status = patch.Status
	done, err := CompleteTask(context.Background(), task, now)
	if err != nil {
		t.Fatalf("CompleteTask() unexpected error: %v", err)
	}
	if done.Status != entity.TaskStatusCompleted {
		t.Errorf("patch.Status = %v, want completed", done.Status)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(now) {
		t.Errorf("patch.CompletedAt = %v, want %v", done.CompletedAt, now)
	}

	task.Status = done.Status
	if _, err := StartTask(context.Background(), task); !errors.Is(err, ErrInvalidState) {
		t.Errorf("StartTask() from completed error = %v, want ErrInvalidState", err)
	}
}

func TestCheckIn(t *testing.T) {
	if err := CheckIn(nil); err != nil {
		t.Errorf("CheckIn(nil) = %v, want nil", err)
	}

	active := &entity.Timesheet{ID: "ts-1", EmployeeID: "emp-a", CheckIn: "09:00:00", Status: entity.TimesheetStatusActive}
	if err := CheckIn(active); !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("CheckIn() with active record = %v, want ErrAlreadyActive", err)
	}

	closed := &entity.Timesheet{ID: "ts-2", EmployeeID: "emp-a", Status: entity.TimesheetStatusCompleted}
	if err := CheckIn(closed); err != nil {
		t.Errorf("CheckIn() with completed record = %v, want nil", err)
	}
}

func TestCheckOut(t *testing.T) {
	ts := &entity.Timesheet{
		ID:         "ts-1",
		EmployeeID: "emp-a",
		CheckIn:    "09:00:00",
		Status:     entity.TimesheetStatusActive,
	}
	now := time.Date(2025, 3, 1, 17, 30, 0, 0, time.UTC)

	patch, err := CheckOut(context.Background(), ts, now)
	if err != nil {
		t.Fatalf("CheckOut() unexpected error: %v", err)
	}
	if patch.Status != entity.TimesheetStatusCompleted {
		t.Errorf("patch.Status = %v, want completed", patch.Status)
	}
	if patch.CheckOut != "17:30:00" {
		t.Errorf("patch.CheckOut = %v, want 17:30:00", patch.CheckOut)
	}
	if patch.WorkingHours != 8.5 {
		t.Errorf("patch.WorkingHours = %v, want 8.5", patch.WorkingHours)
	}
}

func TestCheckOut_NeverNegative(t *testing.T) {
	// Check-in recorded after the check-out clock (overnight wrap)
	ts := &entity.Timesheet{
		ID:      "ts-1",
		CheckIn: "22:00:00",
		Status:  entity.TimesheetStatusActive,
	}
	now := time.Date(2025, 3, 2, 6, 0, 0, 0, time.UTC)

	patch, err := CheckOut(context.Background(), ts, now)
	if err != nil {
		t.Fatalf("CheckOut() unexpected error: %v", err)
	}
	if patch.WorkingHours != 0 {
		t.Errorf("patch.WorkingHours = %v, want 0 (floored)", patch.WorkingHours)
	}
}

func TestCheckOut_NotActive(t *testing.T) {
	if _, err := CheckOut(context.Background(), nil, time.Now()); !errors.Is(err, ErrNotActive) {
		t.Errorf("CheckOut(nil) error = %v, want ErrNotActive", err)
	}

	done := &entity.Timesheet{ID: "ts-1", Status: entity.TimesheetStatusCompleted}
	if _, err := CheckOut(context.Background(), done, time.Now()); !errors.Is(err, ErrNotActive) {
		t.Errorf("CheckOut() on completed error = %v, want ErrNotActive", err)
	}
}

func TestWorkingHours_BadClock(t *testing.T) {
	ts := &entity.Timesheet{ID: "ts-1", CheckIn: "nine am", Status: entity.TimesheetStatusActive}
	if _, err := CheckOut(context.Background(), ts, time.Now()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("CheckOut() with bad check-in clock error = %v, want ErrInvalidInput", err)
	}
}
