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

// IncidentRepository implements port.IncidentRepository
type IncidentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *sql.DB, logger *zap.Logger) port.IncidentRepository {
	return &IncidentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new incident, assigning its ID and timestamps
func (r *IncidentRepository) Create(ctx context.Context, in *entity.Incident) error {
	in.ID = uuid.NewString()
	now := time.Now().UTC()
	in.CreatedAt = now
	in.UpdatedAt = now

	query := `
		INSERT INTO incidents (
			id, employee_id, employee_name, title, description,
			category, priority, status, assigned_to, resolved_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		in.ID, in.EmployeeID, in.EmployeeName, in.Title, in.Description,
		in.Category, in.Priority, in.Status, nullIfEmpty(in.AssignedTo), in.ResolvedAt,
		in.CreatedAt, in.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create incident",
			zap.String("employee_id", in.EmployeeID),
			zap.Error(err))
		return fmt.Errorf("create incident: %w: %w", port.ErrStoreUnavailable, err)
	}

	return nil
}

// GetByID returns the incident with the given ID
func (r *IncidentRepository) GetByID(ctx context.Context, id string) (*entity.Incident, error) {
	query := selectIncident + ` WHERE id = ?`

	in, err := scanIncident(sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("incident %s: %w", id, port.ErrNotFound)
		}
		return nil, fmt.Errorf("get incident: %w: %w", port.ErrStoreUnavailable, err)
	}
	return in, nil
}

// List returns all incidents, newest first
func (r *IncidentRepository) List(ctx context.Context) ([]*entity.Incident, error) {
	query := selectIncident + ` ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListByEmployee returns one employee's incidents, newest first
func (r *IncidentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Incident, error) {
	query := selectIncident + ` WHERE employee_id = ? ORDER BY created_at DESC`
	return r.list(ctx, query, employeeID)
}

// UpdateAssignment moves an incident in-progress under an assignee
func (r *IncidentRepository) UpdateAssignment(ctx context.Context, id string, status, assignedTo string) error {
	query := `UPDATE incidents SET status = ?, assigned_to = ?, updated_at = ? WHERE id = ?`
	return r.update(ctx, id, query, status, assignedTo, time.Now().UTC(), id)
}

// UpdateStatus applies a resolve/close patch; resolved_at is stamped when
// non-nil and left untouched when nil
func (r *IncidentRepository) UpdateStatus(ctx context.Context, id string, status string, resolvedAt *time.Time) error {
	if resolvedAt != nil {
		query := `UPDATE incidents SET status = ?, resolved_at = ?, updated_at = ? WHERE id = ?`
		return r.update(ctx, id, query, status, resolvedAt.UTC(), time.Now().UTC(), id)
	}
	query := `UPDATE incidents SET status = ?, updated_at = ? WHERE id = ?`
	return r.update(ctx, id, query, status, time.Now().UTC(), id)
}

func (r *IncidentRepository) update(ctx context.Context, id, query string, args ...interface{}) error {
	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update incident", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("update incident: %w: %w", port.ErrStoreUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update incident: %w: %w", port.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return fmt.Errorf("incident %s: %w", id, port.ErrNotFound)
	}

	return nil
}

func (r *IncidentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Incident, error) {
	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w: %w", port.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var incidents []*entity.Incident
	for rows.Next() {
		in, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("list incidents: %w: %w", port.ErrStoreUnavailable, err)
		}
		incidents = append(incidents, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list incidents: %w: %w", port.ErrStoreUnavailable, err)
	}
	return incidents, nil
}

const selectIncident = `
	SELECT id, employee_id, employee_name, title, description,
		category, priority, status, assigned_to, resolved_at,
		created_at, updated_at
	FROM incidents`

func scanIncident(row scanner) (*entity.Incident, error) {
	var in entity.Incident
	var assignedTo sql.NullString
	var resolvedAt sql.NullTime

	err := row.Scan(
		&in.ID, &in.EmployeeID, &in.EmployeeName, &in.Title, &in.Description,
		&in.Category, &in.Priority, &in.Status, &assignedTo, &resolvedAt,
		&in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	in.AssignedTo = assignedTo.String
	if resolvedAt.Valid {
		t := resolvedAt.Time
		in.ResolvedAt = &t
	}
	return &in, nil
}

// Verify interface compliance
var _ port.IncidentRepository = (*IncidentRepository)(nil)
