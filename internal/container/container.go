// Package container wires the application's dependencies in order:
// database and migrations, repositories, event dispatcher, then
// services. Teardown runs in reverse.
package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/seatbook/seatbook/internal/application/dispatcher"
	"github.com/seatbook/seatbook/internal/application/port"
	"github.com/seatbook/seatbook/internal/application/service"
	"github.com/seatbook/seatbook/internal/config"
	"github.com/seatbook/seatbook/internal/infrastructure/persistence/repository"
	"github.com/seatbook/seatbook/internal/infrastructure/persistence/sqlite"
	"github.com/seatbook/seatbook/internal/notification"
	"github.com/seatbook/seatbook/internal/security"
	"github.com/seatbook/seatbook/pkg/database"
)

// RepositoryBundle groups all repositories for convenient access
type RepositoryBundle struct {
	Booking   port.BookingRepository
	Incident  port.IncidentRepository
	Task      port.TaskRepository
	Timesheet port.TimesheetRepository
	User      port.UserRepository
}

// ServiceBundle groups all application services
type ServiceBundle struct {
	Auth      service.AuthService
	Booking   service.BookingService
	Incident  service.IncidentService
	Task      service.TaskService
	Timesheet service.TimesheetService
}

// Container manages application dependencies and their lifecycle
type Container struct {
	config *config.Config
	logger *zap.Logger

	db           *database.DB
	txManager    *sqlite.TxManager
	repositories *RepositoryBundle

	dispatcher dispatcher.Dispatcher
	jwtManager *security.JWTManager
	services   *ServiceBundle

	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// New creates a container from configuration. Call Start to initialize.
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components in dependency order
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	db, err := database.New(database.Config{
		Path:            c.config.Database.Path,
		MaxOpenConns:    c.config.Database.MaxOpenConns,
		MaxIdleConns:    c.config.Database.MaxIdleConns,
		ConnMaxLifetime: c.config.Database.ConnMaxLifetime,
	}, c.logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	c.db = db

	migrator := database.NewMigrator(db, c.logger)
	if err := migrator.RunMigrations(ctx, c.config.Database.MigrationsDir); err != nil {
		_ = db.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	c.txManager = sqlite.NewTxManager(db.DB, c.logger)

	c.repositories = &RepositoryBundle{
		Booking:   repository.NewBookingRepository(db.DB, c.logger),
		Incident:  repository.NewIncidentRepository(db.DB, c.logger),
		Task:      repository.NewTaskRepository(db.DB, c.logger),
		Timesheet: repository.NewTimesheetRepository(db.DB, c.logger),
		User:      repository.NewUserRepository(db.DB, c.logger),
	}

	c.dispatcher = dispatcher.New(dispatcher.WithLogger(&dispatcherLoggerAdapter{logger: c.logger}))
	notification.NewSink(c.logger).Attach(c.dispatcher)

	c.jwtManager = security.NewJWTManager(c.config.Auth.JWTSecret, c.config.Auth.TokenTTL)

	svcLogger := &serviceLoggerAdapter{logger: c.logger}
	c.services = &ServiceBundle{
		Auth:      service.NewAuthService(c.repositories.User, c.jwtManager, svcLogger),
		Booking:   service.NewBookingService(c.repositories.Booking, c.txManager, c.dispatcher, svcLogger),
		Incident:  service.NewIncidentService(c.repositories.Incident, c.txManager, c.dispatcher, svcLogger),
		Task:      service.NewTaskService(c.repositories.Task, c.repositories.User, c.txManager, c.dispatcher, svcLogger),
		Timesheet: service.NewTimesheetService(c.repositories.Timesheet, c.txManager, c.dispatcher, svcLogger),
	}

	c.ready.Store(true)
	c.logger.Info("Container started")
	return nil
}

// Close tears down components in reverse initialization order
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Swap(true) {
		return nil
	}
	c.ready.Store(false)

	var errs []error

	if c.dispatcher != nil {
		if err := c.dispatcher.Close(); err != nil {
			c.logger.Error("Failed to close dispatcher", zap.Error(err))
			errs = append(errs, err)
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.logger.Error("Failed to close database", zap.Error(err))
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed")
	return nil
}

// Services returns the application services. Start must have succeeded.
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Repositories returns the repository bundle
func (c *Container) Repositories() *RepositoryBundle {
	return c.repositories
}

// Dispatcher returns the event dispatcher
func (c *Container) Dispatcher() dispatcher.Dispatcher {
	return c.dispatcher
}

// JWTManager returns the token manager
func (c *Container) JWTManager() *security.JWTManager {
	return c.jwtManager
}

// ServiceLogger returns the logger adapted to the service.Logger interface
func (c *Container) ServiceLogger() service.Logger {
	return &serviceLoggerAdapter{logger: c.logger}
}

// serviceLoggerAdapter adapts zap.Logger to the service.Logger interface
type serviceLoggerAdapter struct {
	logger *zap.Logger
}

func (a *serviceLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, toZapFields(keysAndValues...)...)
}

func (a *serviceLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, toZapFields(keysAndValues...)...)
}

// dispatcherLoggerAdapter adapts zap.Logger to the dispatcher.Logger interface
type dispatcherLoggerAdapter struct {
	logger *zap.Logger
}

func (a *dispatcherLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, toZapFields(keysAndValues...)...)
}

func (a *dispatcherLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, toZapFields(keysAndValues...)...)
}

func toZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
