package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seatbook/seatbook/internal/application/authz"
	"github.com/seatbook/seatbook/internal/application/dispatcher"
	"github.com/seatbook/seatbook/internal/application/lifecycle"
	"github.com/seatbook/seatbook/internal/application/port"
	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/domain/event"
)

// CheckInInput carries the fields an employee submits when clocking in
type CheckInInput struct {
	LocationID string `json:"location_id"`
	AccessCode string `json:"access_code,omitempty"`
}

// TimesheetService manages the check-in/check-out lifecycle
type TimesheetService interface {
	CheckIn(ctx context.Context, actor entity.Actor, input CheckInInput) (*entity.Timesheet, error)
	CheckOut(ctx context.Context, actor entity.Actor) (*entity.Timesheet, error)

	// Active returns the actor's active timesheet, or nil when clocked out
	Active(ctx context.Context, actor entity.Actor) (*entity.Timesheet, error)

	List(ctx context.Context, actor entity.Actor) ([]*entity.Timesheet, error)
}

type timesheetServiceImpl struct {
	repo       port.TimesheetRepository
	txManager  port.TransactionManager
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewTimesheetService creates a new TimesheetService
func NewTimesheetService(
	repo port.TimesheetRepository,
	txManager port.TransactionManager,
	d dispatcher.Dispatcher,
	logger Logger,
) TimesheetService {
	return &timesheetServiceImpl{
		repo:       repo,
		txManager:  txManager,
		dispatcher: d,
		logger:     logger,
	}
}

// CheckIn opens a new active timesheet. Refused while the employee
// already has one active; the check runs inside the same transaction as
// the insert to keep double-submits from slipping through.
func (s *timesheetServiceImpl) CheckIn(ctx context.Context, actor entity.Actor, input CheckInInput) (*entity.Timesheet, error) {
	if err := authz.Authorize(actor, entity.KindTimesheet, authz.ActionCheckIn, actor.ID); err != nil {
		return nil, err
	}

	if !entity.KnownLocation(input.LocationID) {
		return nil, fmt.Errorf("%w: unknown location %q", lifecycle.ErrInvalidInput, input.LocationID)
	}
	if input.AccessCode != "" && !entity.KnownTimesheetCode(input.AccessCode) {
		return nil, fmt.Errorf("%w: unknown access code", lifecycle.ErrInvalidInput)
	}

	now := time.Now()
	timesheet := &entity.Timesheet{
		EmployeeID:   actor.ID,
		EmployeeName: actor.Name,
		LocationID:   input.LocationID,
		Date:         now.Format("2006-01-02"),
		CheckIn:      now.Format("15:04:05"),
		AccessCode:   input.AccessCode,
		Status:       entity.TimesheetStatusActive,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		active, err := s.repo.GetActiveByEmployee(txCtx, actor.ID)
		if err != nil && !errors.Is(err, port.ErrNotFound) {
			return err
		}

		if err := lifecycle.CheckIn(active); err != nil {
			return err
		}

		return s.repo.Create(txCtx, timesheet)
	})

	if err != nil {
		s.logger.Error("Check-in failed", "error", err, "employee_id", actor.ID)
		return nil, err
	}

	s.notify(ctx, event.New(event.TypeTimesheetOpened, entity.KindTimesheet, timesheet.ID, actor.ID, map[string]interface{}{
		"location_id": timesheet.LocationID,
	}))

	s.logger.Info("Checked in", "id", timesheet.ID, "employee_id", actor.ID, "location_id", timesheet.LocationID)
	return timesheet, nil
}

// CheckOut closes the actor's active timesheet and computes working hours
func (s *timesheetServiceImpl) CheckOut(ctx context.Context, actor entity.Actor) (*entity.Timesheet, error) {
	var updated *entity.Timesheet

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		active, err := s.repo.GetActiveByEmployee(txCtx, actor.ID)
		if err != nil {
			if errors.Is(err, port.ErrNotFound) {
				return lifecycle.ErrNotActive
			}
			return err
		}

		if err := authz.Authorize(actor, entity.KindTimesheet, authz.ActionCheckOut, active.Owner()); err != nil {
			return err
		}

		patch, err := lifecycle.CheckOut(txCtx, active, time.Now())
		if err != nil {
			return err
		}

		if err := s.repo.UpdateCheckout(txCtx, active.ID, patch.Status, patch.CheckOut, patch.WorkingHours); err != nil {
			return fmt.Errorf("update checkout: %w", err)
		}

		updated, err = s.repo.GetByID(txCtx, active.ID)
		return err
	})

	if err != nil {
		s.logger.Error("Check-out failed", "error", err, "employee_id", actor.ID)
		return nil, err
	}

	s.notify(ctx, event.New(event.TypeTimesheetClosed, entity.KindTimesheet, updated.ID, actor.ID, map[string]interface{}{
		"working_hours": updated.WorkingHours,
	}))

	s.logger.Info("Checked out", "id", updated.ID, "employee_id", actor.ID, "working_hours", updated.WorkingHours)
	return updated, nil
}

// Active returns the actor's active timesheet, or nil when clocked out
func (s *timesheetServiceImpl) Active(ctx context.Context, actor entity.Actor) (*entity.Timesheet, error) {
	active, err := s.repo.GetActiveByEmployee(ctx, actor.ID)
	if errors.Is(err, port.ErrNotFound) {
		return nil, nil
	}
	return active, err
}

// List returns the actor's timesheets, newest first
func (s *timesheetServiceImpl) List(ctx context.Context, actor entity.Actor) ([]*entity.Timesheet, error) {
	return s.repo.ListByEmployee(ctx, actor.ID)
}

func (s *timesheetServiceImpl) notify(ctx context.Context, evt *event.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, evt); err != nil {
		s.logger.Error("Failed to dispatch event", "error", err, "event_type", evt.Type)
	}
}
