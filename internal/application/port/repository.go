package port

import (
	"context"
	"errors"
	"time"

	"github.com/seatbook/seatbook/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the given identity
	ErrNotFound = errors.New("record not found")

	// ErrStoreUnavailable is returned when the underlying persistence
	// call failed. It is always surfaced to the caller; the core never
	// retries silently.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// BookingRepository defines persistence operations for BookingRequest.
// List results are ordered by creation time descending. Every update
// stamps updated_at atomically with the caller-supplied fields.
type BookingRepository interface {
	Create(ctx context.Context, b *entity.BookingRequest) error
	GetByID(ctx context.Context, id string) (*entity.BookingRequest, error)
	List(ctx context.Context) ([]*entity.BookingRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*entity.BookingRequest, error)

	// UpdateDecision applies an approve/reject patch. A nil reason clears
	// the stored rejection reason.
	UpdateDecision(ctx context.Context, id string, status string, reason *string) error
}

// IncidentRepository defines persistence operations for Incident
type IncidentRepository interface {
	Create(ctx context.Context, in *entity.Incident) error
	GetByID(ctx context.Context, id string) (*entity.Incident, error)
	List(ctx context.Context) ([]*entity.Incident, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Incident, error)

	// UpdateAssignment moves an incident in-progress under an assignee
	UpdateAssignment(ctx context.Context, id string, status, assignedTo string) error

	// UpdateStatus applies a resolve/close patch; resolvedAt is stamped
	// when non-nil and left untouched when nil
	UpdateStatus(ctx context.Context, id string, status string, resolvedAt *time.Time) error
}

// TaskRepository defines persistence operations for Task
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	List(ctx context.Context) ([]*entity.Task, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]*entity.Task, error)

	// UpdateProgress applies a start/complete patch; completedAt is
	// stamped when non-nil
	UpdateProgress(ctx context.Context, id string, status string, completedAt *time.Time) error
}

// TimesheetRepository defines persistence operations for Timesheet
type TimesheetRepository interface {
	Create(ctx context.Context, ts *entity.Timesheet) error
	GetByID(ctx context.Context, id string) (*entity.Timesheet, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Timesheet, error)

	// GetActiveByEmployee returns the employee's active timesheet, or
	// ErrNotFound when they are not checked in
	GetActiveByEmployee(ctx context.Context, employeeID string) (*entity.Timesheet, error)

	// UpdateCheckout closes an active timesheet
	UpdateCheckout(ctx context.Context, id string, status, checkOut string, workingHours float64) error
}

// UserRepository defines persistence operations for registered users
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TransactionManager executes a function within a database transaction
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
