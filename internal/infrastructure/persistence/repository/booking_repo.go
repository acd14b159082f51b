package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seatbook/seatbook/internal/application/port"
	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/infrastructure/persistence/sqlite"
)

// BookingRepository implements port.BookingRepository
type BookingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *sql.DB, logger *zap.Logger) port.BookingRepository {
	return &BookingRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new booking request, assigning its ID and timestamps
func (r *BookingRepository) Create(ctx context.Context, b *entity.BookingRequest) error {
	b.ID = uuid.NewString()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `
		INSERT INTO seat_bookings (
			id, employee_id, employee_name, employee_email,
			seat_id, location_id, date, time_slot,
			status, reason, access_code, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		b.ID, b.EmployeeID, b.EmployeeName, b.EmployeeEmail,
		b.SeatID, b.LocationID, b.Date, b.TimeSlot,
		b.Status, nullIfEmpty(b.Reason), nullIfEmpty(b.AccessCode),
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create booking",
			zap.String("employee_id", b.EmployeeID),
			zap.Error(err))
		return fmt.Errorf("create booking: %w: %w", port.ErrStoreUnavailable, err)
	}

	return nil
}

// GetByID returns the booking with the given ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*entity.BookingRequest, error) {
	query := selectBooking + ` WHERE id = ?`

	b, err := scanBooking(sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", id, port.ErrNotFound)
		}
		return nil, fmt.Errorf("get booking: %w: %w", port.ErrStoreUnavailable, err)
	}
	return b, nil
}

// List returns all bookings, newest first
func (r *BookingRepository) List(ctx context.Context) ([]*entity.BookingRequest, error) {
	query := selectBooking + ` ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListByEmployee returns one employee's bookings, newest first
func (r *BookingRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.BookingRequest, error) {
	query := selectBooking + ` WHERE employee_id = ? ORDER BY created_at DESC`
	return r.list(ctx, query, employeeID)
}

// UpdateDecision applies an approve/reject patch. A nil reason clears the
// stored rejection reason.
func (r *BookingRepository) UpdateDecision(ctx context.Context, id string, status string, reason *string) error {
	query := `UPDATE seat_bookings SET status = ?, reason = ?, updated_at = ? WHERE id = ?`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		status, reason, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error("Failed to update booking decision",
			zap.String("id", id),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("update booking: %w: %w", port.ErrStoreUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update booking: %w: %w", port.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return fmt.Errorf("booking %s: %w", id, port.ErrNotFound)
	}

	return nil
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.BookingRequest, error) {
	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w: %w", port.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var bookings []*entity.BookingRequest
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("list bookings: %w: %w", port.ErrStoreUnavailable, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w: %w", port.ErrStoreUnavailable, err)
	}
	return bookings, nil
}

const selectBooking = `
	SELECT id, employee_id, employee_name, employee_email,
		seat_id, location_id, date, time_slot,
		status, reason, access_code, created_at, updated_at
	FROM seat_bookings`

func scanBooking(row scanner) (*entity.BookingRequest, error) {
	var b entity.BookingRequest
	var reason, accessCode sql.NullString

	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.EmployeeName, &b.EmployeeEmail,
		&b.SeatID, &b.LocationID, &b.Date, &b.TimeSlot,
		&b.Status, &reason, &accessCode, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Reason = reason.String
	b.AccessCode = accessCode.String
	return &b, nil
}

// Verify interface compliance
var _ port.BookingRepository = (*BookingRepository)(nil)
