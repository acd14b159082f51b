package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatbook/seatbook/internal/application/authz"
	"github.com/seatbook/seatbook/internal/application/lifecycle"
	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/domain/event"
)

type mockIncidentRepo struct {
	createFunc           func(ctx context.Context, in *entity.Incident) error
	getByIDFunc          func(ctx context.Context, id string) (*entity.Incident, error)
	listFunc             func(ctx context.Context) ([]*entity.Incident, error)
	listByEmployeeFunc   func(ctx context.Context, employeeID string) ([]*entity.Incident, error)
	updateAssignmentFunc func(ctx context.Context, id string, status, assignedTo string) error
	updateStatusFunc     func(ctx context.Context, id string, status string, resolvedAt *time.Time) error
}

func (m *mockIncidentRepo) Create(ctx context.Context, in *entity.Incident) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return nil
}

func (m *mockIncidentRepo) GetByID(ctx context.Context, id string) (*entity.Incident, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockIncidentRepo) List(ctx context.Context) ([]*entity.Incident, error) {
	return m.listFunc(ctx)
}

func (m *mockIncidentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Incident, error) {
	return m.listByEmployeeFunc(ctx, employeeID)
}

func (m *mockIncidentRepo) UpdateAssignment(ctx context.Context, id string, status, assignedTo string) error {
	if m.updateAssignmentFunc != nil {
		return m.updateAssignmentFunc(ctx, id, status, assignedTo)
	}
	return nil
}

func (m *mockIncidentRepo) UpdateStatus(ctx context.Context, id string, status string, resolvedAt *time.Time) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, resolvedAt)
	}
	return nil
}

// statefulIncidentRepo keeps a single incident in memory so transition
// tests can observe the re-read after the patch
func statefulIncidentRepo(in *entity.Incident) *mockIncidentRepo {
	return &mockIncidentRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Incident, error) {
			cp := *in
			return &cp, nil
		},
		updateAssignmentFunc: func(ctx context.Context, id string, status, assignedTo string) error {
			in.Status = status
			in.AssignedTo = assignedTo
			return nil
		},
		updateStatusFunc: func(ctx context.Context, id string, status string, resolvedAt *time.Time) error {
			in.Status = status
			if resolvedAt != nil {
				in.ResolvedAt = resolvedAt
			}
			return nil
		},
	}
}

func validIncidentInput() ReportIncidentInput {
	return ReportIncidentInput{
		Title:       "Broken AC",
		Description: "AC not working on floor 2",
		Category:    "facility",
		Priority:    "high",
	}
}

func TestIncidentReport(t *testing.T) {
	d := &mockDispatcher{}
	svc := NewIncidentService(&mockIncidentRepo{}, &mockTxManager{}, d, noopLogger{})

	incident, err := svc.Report(context.Background(), testEmployee, validIncidentInput())
	require.NoError(t, err)
	assert.Equal(t, entity.IncidentStatusOpen, incident.Status)
	assert.Equal(t, testEmployee.ID, incident.EmployeeID)
	assert.Empty(t, incident.AssignedTo)
	assert.Nil(t, incident.ResolvedAt)

	events := d.dispatched()
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeIncidentCreated, events[0].Type)
}

func TestIncidentReportInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ReportIncidentInput)
	}{
		{"empty title", func(in *ReportIncidentInput) { in.Title = "  " }},
		{"empty description", func(in *ReportIncidentInput) { in.Description = "" }},
		{"unknown category", func(in *ReportIncidentInput) { in.Category = "weather" }},
		{"unknown priority", func(in *ReportIncidentInput) { in.Priority = "urgent" }},
	}

	svc := NewIncidentService(&mockIncidentRepo{}, &mockTxManager{}, &mockDispatcher{}, noopLogger{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validIncidentInput()
			tt.mutate(&input)
			_, err := svc.Report(context.Background(), testEmployee, input)
			assert.ErrorIs(t, err, lifecycle.ErrInvalidInput)
		})
	}
}

func TestIncidentAssign(t *testing.T) {
	stored := &entity.Incident{ID: "inc-1", EmployeeID: testEmployee.ID, Status: entity.IncidentStatusOpen}
	d := &mockDispatcher{}
	svc := NewIncidentService(statefulIncidentRepo(stored), &mockTxManager{}, d, noopLogger{})

	updated, err := svc.Assign(context.Background(), testAdmin, "inc-1", "emp-2")
	require.NoError(t, err)
	assert.Equal(t, entity.IncidentStatusInProgress, updated.Status)
	assert.Equal(t, "emp-2", updated.AssignedTo)

	events := d.dispatched()
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeIncidentUpdated, events[0].Type)
}

func TestIncidentAssignForbiddenForEmployee(t *testing.T) {
	stored := &entity.Incident{ID: "inc-1", EmployeeID: testEmployee.ID, Status: entity.IncidentStatusOpen}
	svc := NewIncidentService(statefulIncidentRepo(stored), &mockTxManager{}, &mockDispatcher{}, noopLogger{})

	_, err := svc.Assign(context.Background(), testEmployee, "inc-1", "emp-2")
	assert.ErrorIs(t, err, authz.ErrForbidden)
}

func TestIncidentResolveStampsTime(t *testing.T) {
	for _, from := range []string{entity.IncidentStatusOpen, entity.IncidentStatusInProgress} {
		t.Run(from, func(t *testing.T) {
			stored := &entity.Incident{ID: "inc-1", EmployeeID: testEmployee.ID, Status: from}
			svc := NewIncidentService(statefulIncidentRepo(stored), &mockTxManager{}, &mockDispatcher{}, noopLogger{})

			before := time.Now()
			updated, err := svc.Resolve(context.Background(), testAdmin, "inc-1")
			require.NoError(t, err)
			assert.Equal(t, entity.IncidentStatusResolved, updated.Status)
			require.NotNil(t, updated.ResolvedAt)
			assert.False(t, updated.ResolvedAt.Before(before))
		})
	}
}

func TestIncidentResolveTwice(t *testing.T) {
	stored := &entity.Incident{ID: "inc-1", EmployeeID: testEmployee.ID, Status: entity.IncidentStatusResolved}
	svc := NewIncidentService(statefulIncidentRepo(stored), &mockTxManager{}, &mockDispatcher{}, noopLogger{})

	_, err := svc.Resolve(context.Background(), testAdmin, "inc-1")
	assert.ErrorIs(t, err, lifecycle.ErrInvalidState)
}

func TestIncidentClosePreservesResolvedAt(t *testing.T) {
	resolvedAt := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	stored := &entity.Incident{
		ID:         "inc-1",
		EmployeeID: testEmployee.ID,
		Status:     entity.IncidentStatusResolved,
		ResolvedAt: &resolvedAt,
	}
	svc := NewIncidentService(statefulIncidentRepo(stored), &mockTxManager{}, &mockDispatcher{}, noopLogger{})

	updated, err := svc.Close(context.Background(), testAdmin, "inc-1")
	require.NoError(t, err)
	assert.Equal(t, entity.IncidentStatusClosed, updated.Status)
	require.NotNil(t, updated.ResolvedAt)
	assert.True(t, updated.ResolvedAt.Equal(resolvedAt))
}

func TestIncidentCloseFromOpen(t *testing.T) {
	stored := &entity.Incident{ID: "inc-1", EmployeeID: testEmployee.ID, Status: entity.IncidentStatusOpen}
	svc := NewIncidentService(statefulIncidentRepo(stored), &mockTxManager{}, &mockDispatcher{}, noopLogger{})

	_, err := svc.Close(context.Background(), testAdmin, "inc-1")
	assert.ErrorIs(t, err, lifecycle.ErrInvalidState)
}

func TestIncidentListOpen(t *testing.T) {
	repo := &mockIncidentRepo{
		listFunc: func(ctx context.Context) ([]*entity.Incident, error) {
			return []*entity.Incident{
				{ID: "inc-1", Status: entity.IncidentStatusOpen},
				{ID: "inc-2", Status: entity.IncidentStatusClosed},
				{ID: "inc-3", Status: entity.IncidentStatusInProgress},
				{ID: "inc-4", Status: entity.IncidentStatusResolved},
			}, nil
		},
	}
	svc := NewIncidentService(repo, &mockTxManager{}, &mockDispatcher{}, noopLogger{})

	open, err := svc.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "inc-1", open[0].ID)
	assert.Equal(t, "inc-3", open[1].ID)
}
