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

// TaskRepository implements port.TaskRepository
type TaskRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB, logger *zap.Logger) port.TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new task, assigning its ID and timestamps
func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	t.ID = uuid.NewString()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO tasks (
			id, title, description, assigned_to, assigned_by,
			priority, status, due_date, completed_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.AssignedTo, t.AssignedBy,
		t.Priority, t.Status, t.DueDate, t.CompletedAt,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create task",
			zap.String("assigned_to", t.AssignedTo),
			zap.Error(err))
		return fmt.Errorf("create task: %w: %w", port.ErrStoreUnavailable, err)
	}

	return nil
}

// GetByID returns the task with the given ID
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	query := selectTask + ` WHERE id = ?`

	t, err := scanTask(sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, port.ErrNotFound)
		}
		return nil, fmt.Errorf("get task: %w: %w", port.ErrStoreUnavailable, err)
	}
	return t, nil
}

// List returns all tasks, newest first
func (r *TaskRepository) List(ctx context.Context) ([]*entity.Task, error) {
	query := selectTask + ` ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListByAssignee returns one employee's assigned tasks, newest first
func (r *TaskRepository) ListByAssignee(ctx context.Context, assigneeID string) ([]*entity.Task, error) {
	query := selectTask + ` WHERE assigned_to = ? ORDER BY created_at DESC`
	return r.list(ctx, query, assigneeID)
}

// UpdateProgress applies a start/complete patch; completed_at is stamped
// when non-nil
func (r *TaskRepository) UpdateProgress(ctx context.Context, id string, status string, completedAt *time.Time) error {
	var query string
	var args []interface{}
	if completedAt != nil {
		query = `UPDATE tasks SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?`
		args = []interface{}{status, completedAt.UTC(), time.Now().UTC(), id}
	} else {
		query = `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`
		args = []interface{}{status, time.Now().UTC(), id}
	}

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update task",
			zap.String("id", id),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("update task: %w: %w", port.ErrStoreUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w: %w", port.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", id, port.ErrNotFound)
	}

	return nil
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Task, error) {
	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w: %w", port.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w: %w", port.ErrStoreUnavailable, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w: %w", port.ErrStoreUnavailable, err)
	}
	return tasks, nil
}

const selectTask = `
	SELECT id, title, description, assigned_to, assigned_by,
		priority, status, due_date, completed_at,
		created_at, updated_at
	FROM tasks`

func scanTask(row scanner) (*entity.Task, error) {
	var t entity.Task
	var completedAt sql.NullTime

	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.AssignedBy,
		&t.Priority, &t.Status, &t.DueDate, &completedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		ts := completedAt.Time
		t.CompletedAt = &ts
	}
	return &t, nil
}

// Verify interface compliance
var _ port.TaskRepository = (*TaskRepository)(nil)
