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

// TimesheetRepository implements port.TimesheetRepository
type TimesheetRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(db *sql.DB, logger *zap.Logger) port.TimesheetRepository {
	return &TimesheetRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new timesheet, assigning its ID and timestamps
func (r *TimesheetRepository) Create(ctx context.Context, ts *entity.Timesheet) error {
	ts.ID = uuid.NewString()
	now := time.Now().UTC()
	ts.CreatedAt = now
	ts.UpdatedAt = now

	query := `
		INSERT INTO timesheets (
			id, employee_id, employee_name, location_id, date,
			check_in, check_out, working_hours, access_code, status,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		ts.ID, ts.EmployeeID, ts.EmployeeName, ts.LocationID, ts.Date,
		ts.CheckIn, nullIfEmpty(ts.CheckOut), ts.WorkingHours, nullIfEmpty(ts.AccessCode), ts.Status,
		ts.CreatedAt, ts.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create timesheet",
			zap.String("employee_id", ts.EmployeeID),
			zap.Error(err))
		return fmt.Errorf("create timesheet: %w: %w", port.ErrStoreUnavailable, err)
	}

	return nil
}

// GetByID returns the timesheet with the given ID
func (r *TimesheetRepository) GetByID(ctx context.Context, id string) (*entity.Timesheet, error) {
	query := selectTimesheet + ` WHERE id = ?`

	ts, err := scanTimesheet(sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("timesheet %s: %w", id, port.ErrNotFound)
		}
		return nil, fmt.Errorf("get timesheet: %w: %w", port.ErrStoreUnavailable, err)
	}
	return ts, nil
}

// ListByEmployee returns one employee's timesheets, newest first
func (r *TimesheetRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Timesheet, error) {
	query := selectTimesheet + ` WHERE employee_id = ? ORDER BY created_at DESC`

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list timesheets: %w: %w", port.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var timesheets []*entity.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("list timesheets: %w: %w", port.ErrStoreUnavailable, err)
		}
		timesheets = append(timesheets, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list timesheets: %w: %w", port.ErrStoreUnavailable, err)
	}
	return timesheets, nil
}

// GetActiveByEmployee returns the employee's active timesheet, or
// ErrNotFound when they are not checked in
func (r *TimesheetRepository) GetActiveByEmployee(ctx context.Context, employeeID string) (*entity.Timesheet, error) {
	query := selectTimesheet + ` WHERE employee_id = ? AND status = ? ORDER BY created_at DESC LIMIT 1`

	ts, err := scanTimesheet(sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query,
		employeeID, entity.TimesheetStatusActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active timesheet for %s: %w", employeeID, port.ErrNotFound)
		}
		return nil, fmt.Errorf("get active timesheet: %w: %w", port.ErrStoreUnavailable, err)
	}
	return ts, nil
}

// UpdateCheckout closes an active timesheet
func (r *TimesheetRepository) UpdateCheckout(ctx context.Context, id string, status, checkOut string, workingHours float64) error {
	query := `UPDATE timesheets SET status = ?, check_out = ?, working_hours = ?, updated_at = ? WHERE id = ?`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		status, checkOut, workingHours, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error("Failed to update timesheet checkout",
			zap.String("id", id),
			zap.Error(err))
		return fmt.Errorf("update timesheet: %w: %w", port.ErrStoreUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update timesheet: %w: %w", port.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return fmt.Errorf("timesheet %s: %w", id, port.ErrNotFound)
	}

	return nil
}

const selectTimesheet = `
	SELECT id, employee_id, employee_name, location_id, date,
		check_in, check_out, working_hours, access_code, status,
		created_at, updated_at
	FROM timesheets`

func scanTimesheet(row scanner) (*entity.Timesheet, error) {
	var ts entity.Timesheet
	var checkOut, accessCode sql.NullString

	err := row.Scan(
		&ts.ID, &ts.EmployeeID, &ts.EmployeeName, &ts.LocationID, &ts.Date,
		&ts.CheckIn, &checkOut, &ts.WorkingHours, &accessCode, &ts.Status,
		&ts.CreatedAt, &ts.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ts.CheckOut = checkOut.String
	ts.AccessCode = accessCode.String
	return &ts, nil
}

// Verify interface compliance
var _ port.TimesheetRepository = (*TimesheetRepository)(nil)
