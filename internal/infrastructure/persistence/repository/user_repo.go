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

// UserRepository implements port.UserRepository
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user, assigning its ID
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.ID = uuid.NewString()

	query := `
		INSERT INTO users (id, email, display_name, role, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		u.ID, u.Email, nullIfEmpty(u.DisplayName), u.Role, u.PasswordHash, time.Now().UTC())
	if err != nil {
		r.logger.Error("Failed to create user",
			zap.String("email", u.Email),
			zap.Error(err))
		return fmt.Errorf("create user: %w: %w", port.ErrStoreUnavailable, err)
	}

	return nil
}

// GetByID returns the user with the given ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := selectUser + ` WHERE id = ?`
	return r.get(ctx, query, id)
}

// GetByEmail returns the user registered under the given email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := selectUser + ` WHERE email = ?`
	return r.get(ctx, query, email)
}

func (r *UserRepository) get(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var u entity.User
	var displayName sql.NullString

	err := sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &displayName, &u.Role, &u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %v: %w", arg, port.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w: %w", port.ErrStoreUnavailable, err)
	}

	u.DisplayName = displayName.String
	return &u, nil
}

const selectUser = `SELECT id, email, display_name, role, password_hash FROM users`

// Verify interface compliance
var _ port.UserRepository = (*UserRepository)(nil)
