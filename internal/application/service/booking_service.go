package service

import (
	"context"
	"fmt"
	"time"

	"github.com/seatbook/seatbook/internal/application/authz"
	"github.com/seatbook/seatbook/internal/application/dispatcher"
	"github.com/seatbook/seatbook/internal/application/lifecycle"
	"github.com/seatbook/seatbook/internal/application/port"
	"github.com/seatbook/seatbook/internal/application/query"
	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/domain/event"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// CreateBookingInput carries the fields an employee submits for a seat request
type CreateBookingInput struct {
	SeatID     string `json:"seat_id"`
	LocationID string `json:"location_id"`
	Date       string `json:"date"`
	TimeSlot   string `json:"time_slot"`
	AccessCode string `json:"access_code,omitempty"`
}

// BookingService manages the seat-booking request lifecycle
type BookingService interface {
	Create(ctx context.Context, actor entity.Actor, input CreateBookingInput) (*entity.BookingRequest, error)
	Approve(ctx context.Context, actor entity.Actor, id string) (*entity.BookingRequest, error)
	Reject(ctx context.Context, actor entity.Actor, id, reason string) (*entity.BookingRequest, error)

	// List returns all requests for admins and the actor's own otherwise
	List(ctx context.Context, actor entity.Actor) ([]*entity.BookingRequest, error)

	// ListPending returns the admin review queue
	ListPending(ctx context.Context) ([]*entity.BookingRequest, error)
}

type bookingServiceImpl struct {
	repo       port.BookingRepository
	txManager  port.TransactionManager
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	repo port.BookingRepository,
	txManager port.TransactionManager,
	d dispatcher.Dispatcher,
	logger Logger,
) BookingService {
	return &bookingServiceImpl{
		repo:       repo,
		txManager:  txManager,
		dispatcher: d,
		logger:     logger,
	}
}

// Create validates and stores a new pending booking request
func (s *bookingServiceImpl) Create(ctx context.Context, actor entity.Actor, input CreateBookingInput) (*entity.BookingRequest, error) {
	if err := authz.Authorize(actor, entity.KindBooking, authz.ActionCreate, actor.ID); err != nil {
		return nil, err
	}

	if err := validateBookingInput(input); err != nil {
		return nil, err
	}

	booking := &entity.BookingRequest{
		EmployeeID:    actor.ID,
		EmployeeName:  actor.Name,
		EmployeeEmail: actor.Email,
		SeatID:        input.SeatID,
		LocationID:    input.LocationID,
		Date:          input.Date,
		TimeSlot:      input.TimeSlot,
		AccessCode:    input.AccessCode,
		Status:        entity.BookingStatusPending,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.logger.Error("Failed to create booking", "error", err, "employee_id", actor.ID)
		return nil, err
	}

	s.notify(ctx, event.New(event.TypeBookingCreated, entity.KindBooking, booking.ID, actor.ID, map[string]interface{}{
		"seat_id": booking.SeatID,
		"date":    booking.Date,
	}))

	s.logger.Info("Booking created", "id", booking.ID, "employee_id", actor.ID, "seat_id", booking.SeatID)
	return booking, nil
}

// Approve moves a pending request to approved
func (s *bookingServiceImpl) Approve(ctx context.Context, actor entity.Actor, id string) (*entity.BookingRequest, error) {
	return s.decide(ctx, actor, id, authz.ActionApprove, "")
}

// Reject moves a pending request to rejected with a mandatory reason
func (s *bookingServiceImpl) Reject(ctx context.Context, actor entity.Actor, id, reason string) (*entity.BookingRequest, error) {
	return s.decide(ctx, actor, id, authz.ActionReject, reason)
}

// decide runs the shared read-authorize-transition-patch flow for both
// admin decisions
func (s *bookingServiceImpl) decide(ctx context.Context, actor entity.Actor, id string, action authz.Action, reason string) (*entity.BookingRequest, error) {
	var updated *entity.BookingRequest

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := authz.Authorize(actor, entity.KindBooking, action, booking.Owner()); err != nil {
			return err
		}

		var patch *lifecycle.BookingPatch
		if action == authz.ActionApprove {
			patch, err = lifecycle.ApproveBooking(txCtx, booking)
		} else {
			patch, err = lifecycle.RejectBooking(txCtx, booking, reason)
		}
		if err != nil {
			return err
		}

		if err := s.repo.UpdateDecision(txCtx, id, patch.Status, patch.Reason); err != nil {
			return fmt.Errorf("update decision: %w", err)
		}

		updated, err = s.repo.GetByID(txCtx, id)
		return err
	})

	if err != nil {
		s.logger.Error("Booking decision failed", "error", err, "id", id, "action", action)
		return nil, err
	}

	s.notify(ctx, event.New(event.TypeBookingDecided, entity.KindBooking, id, actor.ID, map[string]interface{}{
		"status": updated.Status,
	}))

	s.logger.Info("Booking decided", "id", id, "status", updated.Status, "decided_by", actor.ID)
	return updated, nil
}

// List returns the role-scoped collection, newest first
func (s *bookingServiceImpl) List(ctx context.Context, actor entity.Actor) ([]*entity.BookingRequest, error) {
	if actor.IsAdmin() {
		return s.repo.List(ctx)
	}
	return s.repo.ListByEmployee(ctx, actor.ID)
}

// ListPending returns requests still awaiting a decision
func (s *bookingServiceImpl) ListPending(ctx context.Context) ([]*entity.BookingRequest, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.PendingOnly(all), nil
}

// notify informs subscribers; delivery failure never fails the transition
func (s *bookingServiceImpl) notify(ctx context.Context, evt *event.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, evt); err != nil {
		s.logger.Error("Failed to dispatch event", "error", err, "event_type", evt.Type)
	}
}

// validateBookingInput checks the submitted fields against the fixed
// reference data
func validateBookingInput(input CreateBookingInput) error {
	if !entity.KnownSeat(input.SeatID) {
		return fmt.Errorf("%w: unknown seat %q", lifecycle.ErrInvalidInput, input.SeatID)
	}
	if !entity.KnownLocation(input.LocationID) {
		return fmt.Errorf("%w: unknown location %q", lifecycle.ErrInvalidInput, input.LocationID)
	}
	if !entity.KnownTimeSlot(input.TimeSlot) {
		return fmt.Errorf("%w: unknown time slot %q", lifecycle.ErrInvalidInput, input.TimeSlot)
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return fmt.Errorf("%w: bad date %q", lifecycle.ErrInvalidInput, input.Date)
	}
	if input.AccessCode != "" && !entity.KnownBookingCode(input.AccessCode) {
		return fmt.Errorf("%w: unknown access code", lifecycle.ErrInvalidInput)
	}
	return nil
}
