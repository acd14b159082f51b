// Package http provides the HTTP adapter for the application layer.
// Handlers translate requests into service calls with an explicit actor
// resolved by the auth middleware; they hold no business rules.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seatbook/seatbook/internal/application/dispatcher"
	"github.com/seatbook/seatbook/internal/application/service"
	"github.com/seatbook/seatbook/internal/security"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Services bundles the application services the server exposes
type Services struct {
	Auth      service.AuthService
	Booking   service.BookingService
	Incident  service.IncidentService
	Task      service.TaskService
	Timesheet service.TimesheetService
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	jwtManager *security.JWTManager
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	services Services,
	jwtManager *security.JWTManager,
	d dispatcher.Dispatcher,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:     config,
		router:     gin.New(),
		services:   services,
		jwtManager: jwtManager,
		dispatcher: d,
		logger:     logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.services, s.dispatcher, s.logger)

	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	api.GET("/refdata", handlers.ReferenceData)

	authed := api.Group("")
	authed.Use(s.authMiddleware())
	{
		authed.GET("/bookings", handlers.ListBookings)
		authed.GET("/bookings/pending", handlers.ListPendingBookings)
		authed.POST("/bookings", handlers.CreateBooking)
		authed.POST("/bookings/:id/approve", handlers.ApproveBooking)
		authed.POST("/bookings/:id/reject", handlers.RejectBooking)

		authed.GET("/incidents", handlers.ListIncidents)
		authed.GET("/incidents/open", handlers.ListOpenIncidents)
		authed.POST("/incidents", handlers.ReportIncident)
		authed.POST("/incidents/:id/assign", handlers.AssignIncident)
		authed.POST("/incidents/:id/resolve", handlers.ResolveIncident)
		authed.POST("/incidents/:id/close", handlers.CloseIncident)

		authed.GET("/tasks", handlers.ListTasks)
		authed.POST("/tasks", handlers.CreateTask)
		authed.POST("/tasks/:id/start", handlers.StartTask)
		authed.POST("/tasks/:id/complete", handlers.CompleteTask)

		authed.GET("/timesheets", handlers.ListTimesheets)
		authed.GET("/timesheets/active", handlers.ActiveTimesheet)
		authed.POST("/timesheets/check-in", handlers.CheckIn)
		authed.POST("/timesheets/check-out", handlers.CheckOut)

		authed.GET("/events", handlers.StreamEvents)
	}
}

// Start starts the HTTP server and blocks until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
