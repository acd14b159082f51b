package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatbook/seatbook/internal/application/lifecycle"
	"github.com/seatbook/seatbook/internal/application/port"
	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/domain/event"
)

type mockTimesheetRepo struct {
	createFunc              func(ctx context.Context, ts *entity.Timesheet) error
	getByIDFunc             func(ctx context.Context, id string) (*entity.Timesheet, error)
	listByEmployeeFunc      func(ctx context.Context, employeeID string) ([]*entity.Timesheet, error)
	getActiveByEmployeeFunc func(ctx context.Context, employeeID string) (*entity.Timesheet, error)
	updateCheckoutFunc      func(ctx context.Context, id string, status, checkOut string, workingHours float64) error
}

func (m *mockTimesheetRepo) Create(ctx context.Context, ts *entity.Timesheet) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, ts)
	}
	return nil
}

func (m *mockTimesheetRepo) GetByID(ctx context.Context, id string) (*entity.Timesheet, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockTimesheetRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Timesheet, error) {
	return m.listByEmployeeFunc(ctx, employeeID)
}

func (m *mockTimesheetRepo) GetActiveByEmployee(ctx context.Context, employeeID string) (*entity.Timesheet, error) {
	if m.getActiveByEmployeeFunc != nil {
		return m.getActiveByEmployeeFunc(ctx, employeeID)
	}
	return nil, port.ErrNotFound
}

func (m *mockTimesheetRepo) UpdateCheckout(ctx context.Context, id string, status, checkOut string, workingHours float64) error {
	if m.updateCheckoutFunc != nil {
		return m.updateCheckoutFunc(ctx, id, status, checkOut, workingHours)
	}
	return nil
}

func TestTimesheetCheckIn(t *testing.T) {
	var created *entity.Timesheet
	repo := &mockTimesheetRepo{
		createFunc: func(ctx context.Context, ts *entity.Timesheet) error {
			created = ts
			return nil
		},
	}
	d := &mockDispatcher{}
	svc := NewTimesheetService(repo, &mockTxManager{}, d, noopLogger{})

	ts, err := svc.CheckIn(context.Background(), testEmployee, CheckInInput{LocationID: "che"})
	require.NoError(t, err)
	assert.Equal(t, entity.TimesheetStatusActive, ts.Status)
	assert.Equal(t, testEmployee.ID, ts.EmployeeID)
	assert.Equal(t, "che", ts.LocationID)
	assert.NotEmpty(t, ts.CheckIn)
	assert.Empty(t, ts.CheckOut)
	assert.Same(t, created, ts)

	events := d.dispatched()
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeTimesheetOpened, events[0].Type)
}

func TestTimesheetCheckInWhileActive(t *testing.T) {
	repo := &mockTimesheetRepo{
		getActiveByEmployeeFunc: func(ctx context.Context, employeeID string) (*entity.Timesheet, error) {
			return &entity.Timesheet{ID: "ts-1", EmployeeID: employeeID, Status: entity.TimesheetStatusActive}, nil
		},
	}
	d := &mockDispatcher{}
	svc := NewTimesheetService(repo, &mockTxManager{}, d, noopLogger{})

	_, err := svc.CheckIn(context.Background(), testEmployee, CheckInInput{LocationID: "che"})
	assert.ErrorIs(t, err, lifecycle.ErrAlreadyActive)
	assert.Empty(t, d.dispatched())
}

func TestTimesheetCheckInInvalidInput(t *testing.T) {
	svc := NewTimesheetService(&mockTimesheetRepo{}, &mockTxManager{}, &mockDispatcher{}, noopLogger{})

	_, err := svc.CheckIn(context.Background(), testEmployee, CheckInInput{LocationID: "mars"})
	assert.ErrorIs(t, err, lifecycle.ErrInvalidInput)

	_, err = svc.CheckIn(context.Background(), testEmployee, CheckInInput{LocationID: "che", AccessCode: "bogus"})
	assert.ErrorIs(t, err, lifecycle.ErrInvalidInput)
}

func TestTimesheetCheckOut(t *testing.T) {
	active := &entity.Timesheet{
		ID:         "ts-1",
		EmployeeID: testEmployee.ID,
		Date:       "2026-03-10",
		CheckIn:    "09:00:00",
		Status:     entity.TimesheetStatusActive,
	}
	repo := &mockTimesheetRepo{
		getActiveByEmployeeFunc: func(ctx context.Context, employeeID string) (*entity.Timesheet, error) {
			cp := *active
			return &cp, nil
		},
		updateCheckoutFunc: func(ctx context.Context, id string, status, checkOut string, workingHours float64) error {
			active.Status = status
			active.CheckOut = checkOut
			active.WorkingHours = workingHours
			return nil
		},
		getByIDFunc: func(ctx context.Context, id string) (*entity.Timesheet, error) {
			cp := *active
			return &cp, nil
		},
	}
	d := &mockDispatcher{}
	svc := NewTimesheetService(repo, &mockTxManager{}, d, noopLogger{})

	updated, err := svc.CheckOut(context.Background(), testEmployee)
	require.NoError(t, err)
	assert.Equal(t, entity.TimesheetStatusCompleted, updated.Status)
	assert.NotEmpty(t, updated.CheckOut)
	assert.GreaterOrEqual(t, updated.WorkingHours, 0.0)

	events := d.dispatched()
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeTimesheetClosed, events[0].Type)
}

func TestTimesheetCheckOutWithoutActive(t *testing.T) {
	d := &mockDispatcher{}
	svc := NewTimesheetService(&mockTimesheetRepo{}, &mockTxManager{}, d, noopLogger{})

	_, err := svc.CheckOut(context.Background(), testEmployee)
	assert.ErrorIs(t, err, lifecycle.ErrNotActive)
	assert.Empty(t, d.dispatched())
}

func TestTimesheetActive(t *testing.T) {
	repo := &mockTimesheetRepo{
		getActiveByEmployeeFunc: func(ctx context.Context, employeeID string) (*entity.Timesheet, error) {
			if employeeID == testEmployee.ID {
				return &entity.Timesheet{ID: "ts-1", EmployeeID: employeeID, Status: entity.TimesheetStatusActive}, nil
			}
			return nil, port.ErrNotFound
		},
	}
	svc := NewTimesheetService(repo, &mockTxManager{}, &mockDispatcher{}, noopLogger{})

	active, err := svc.Active(context.Background(), testEmployee)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "ts-1", active.ID)

	none, err := svc.Active(context.Background(), testAdmin)
	require.NoError(t, err)
	assert.Nil(t, none)
}
