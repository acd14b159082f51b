package http

import (
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seatbook/seatbook/internal/application/authz"
	"github.com/seatbook/seatbook/internal/application/dispatcher"
	"github.com/seatbook/seatbook/internal/application/lifecycle"
	"github.com/seatbook/seatbook/internal/application/port"
	"github.com/seatbook/seatbook/internal/application/service"
	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/domain/event"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	services   Services
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, d dispatcher.Dispatcher, logger Logger) *Handlers {
	return &Handlers{
		services:   services,
		dispatcher: d,
		logger:     logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

// writeError maps application errors onto HTTP status codes
func (h *Handlers) writeError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, lifecycle.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, authz.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, port.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, lifecycle.ErrInvalidState),
		errors.Is(err, lifecycle.ErrAlreadyActive),
		errors.Is(err, lifecycle.ErrNotActive),
		errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, port.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "status", status, "error", err)
	}

	c.JSON(status, Response{Success: false, Error: err.Error()})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"status": "healthy"})
}

// Register handles POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ok(c, http.StatusCreated, user)
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	token, user, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ok(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// ReferenceData handles GET /api/refdata
func (h *Handlers) ReferenceData(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{
		"locations":  entity.Locations,
		"seats":      entity.Seats,
		"time_slots": entity.TimeSlots,
	})
}

// CreateBooking handles POST /api/bookings
func (h *Handlers) CreateBooking(c *gin.Context) {
	var input service.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	booking, err := h.services.Booking.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ok(c, http.StatusCreated, booking)
}

// ApproveBooking handles POST /api/bookings/:id/approve
func (h *Handlers) ApproveBooking(c *gin.Context) {
	booking, err := h.services.Booking.Approve(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, booking)
}

// RejectRequest carries the mandatory rejection reason
type RejectRequest struct {
	Reason string `json:"reason"`
}

// RejectBooking handles POST /api/bookings/:id/reject
func (h *Handlers) RejectBooking(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	booking, err := h.services.Booking.Reject(c.Request.Context(), actorFrom(c), c.Param("id"), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, booking)
}

// ListBookings handles GET /api/bookings
func (h *Handlers) ListBookings(c *gin.Context) {
	bookings, err := h.services.Booking.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, bookings)
}

// ListPendingBookings handles GET /api/bookings/pending
func (h *Handlers) ListPendingBookings(c *gin.Context) {
	if !actorFrom(c).IsAdmin() {
		c.JSON(http.StatusForbidden, Response{Success: false, Error: "admin only"})
		return
	}

	bookings, err := h.services.Booking.ListPending(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, bookings)
}

// ReportIncident handles POST /api/incidents
func (h *Handlers) ReportIncident(c *gin.Context) {
	var input service.ReportIncidentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	incident, err := h.services.Incident.Report(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, incident)
}

// AssignRequest carries the assignee for an incident
type AssignRequest struct {
	AssignedTo string `json:"assigned_to"`
}

// AssignIncident handles POST /api/incidents/:id/assign
func (h *Handlers) AssignIncident(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	incident, err := h.services.Incident.Assign(c.Request.Context(), actorFrom(c), c.Param("id"), req.AssignedTo)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, incident)
}

// ResolveIncident handles POST /api/incidents/:id/resolve
func (h *Handlers) ResolveIncident(c *gin.Context) {
	incident, err := h.services.Incident.Resolve(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, incident)
}

// CloseIncident handles POST /api/incidents/:id/close
func (h *Handlers) CloseIncident(c *gin.Context) {
	incident, err := h.services.Incident.Close(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, incident)
}

// ListIncidents handles GET /api/incidents
func (h *Handlers) ListIncidents(c *gin.Context) {
	incidents, err := h.services.Incident.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, incidents)
}

// ListOpenIncidents handles GET /api/incidents/open
func (h *Handlers) ListOpenIncidents(c *gin.Context) {
	if !actorFrom(c).IsAdmin() {
		c.JSON(http.StatusForbidden, Response{Success: false, Error: "admin only"})
		return
	}

	incidents, err := h.services.Incident.ListOpen(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, incidents)
}

// CreateTask handles POST /api/tasks
func (h *Handlers) CreateTask(c *gin.Context) {
	var input service.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	task, err := h.services.Task.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, task)
}

// StartTask handles POST /api/tasks/:id/start
func (h *Handlers) StartTask(c *gin.Context) {
	task, err := h.services.Task.Start(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, task)
}

// CompleteTask handles POST /api/tasks/:id/complete
func (h *Handlers) CompleteTask(c *gin.Context) {
	task, err := h.services.Task.Complete(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, task)
}

// ListTasks handles GET /api/tasks
func (h *Handlers) ListTasks(c *gin.Context) {
	tasks, err := h.services.Task.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, tasks)
}

// CheckIn handles POST /api/timesheets/check-in
func (h *Handlers) CheckIn(c *gin.Context) {
	var input service.CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	timesheet, err := h.services.Timesheet.CheckIn(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, roundTimesheet(timesheet))
}

// CheckOut handles POST /api/timesheets/check-out
func (h *Handlers) CheckOut(c *gin.Context) {
	timesheet, err := h.services.Timesheet.CheckOut(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	ok(c, http.StatusOK, roundTimesheet(timesheet))
}

// ActiveTimesheet handles GET /api/timesheets/active
func (h *Handlers) ActiveTimesheet(c *gin.Context) {
	timesheet, err := h.services.Timesheet.Active(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if timesheet == nil {
		ok(c, http.StatusOK, nil)
		return
	}
	ok(c, http.StatusOK, roundTimesheet(timesheet))
}

// ListTimesheets handles GET /api/timesheets
func (h *Handlers) ListTimesheets(c *gin.Context) {
	timesheets, err := h.services.Timesheet.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]*entity.Timesheet, 0, len(timesheets))
	for _, ts := range timesheets {
		out = append(out, roundTimesheet(ts))
	}
	ok(c, http.StatusOK, out)
}

// StreamEvents handles GET /api/events. Admins receive a server-sent
// event stream of every change event until they disconnect.
func (h *Handlers) StreamEvents(c *gin.Context) {
	if !actorFrom(c).IsAdmin() {
		c.JSON(http.StatusForbidden, Response{Success: false, Error: "admin only"})
		return
	}

	events, cancel := h.dispatcher.Listen(event.All()...)
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case evt, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(string(evt.Type), evt)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// roundTimesheet rounds working hours to two decimals for presentation;
// the stored value stays unrounded
func roundTimesheet(ts *entity.Timesheet) *entity.Timesheet {
	cp := *ts
	cp.WorkingHours = math.Round(cp.WorkingHours*100) / 100
	return &cp
}
