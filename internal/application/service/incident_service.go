package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/seatbook/seatbook/internal/application/authz"
	"github.com/seatbook/seatbook/internal/application/dispatcher"
	"github.com/seatbook/seatbook/internal/application/lifecycle"
	"github.com/seatbook/seatbook/internal/application/port"
	"github.com/seatbook/seatbook/internal/application/query"
	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/domain/event"
)

// ReportIncidentInput carries the fields an employee submits for an incident
type ReportIncidentInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// IncidentService manages the incident lifecycle
type IncidentService interface {
	Report(ctx context.Context, actor entity.Actor, input ReportIncidentInput) (*entity.Incident, error)
	Assign(ctx context.Context, actor entity.Actor, id, assignee string) (*entity.Incident, error)
	Resolve(ctx context.Context, actor entity.Actor, id string) (*entity.Incident, error)
	Close(ctx context.Context, actor entity.Actor, id string) (*entity.Incident, error)

	// List returns all incidents for admins and the actor's own otherwise
	List(ctx context.Context, actor entity.Actor) ([]*entity.Incident, error)

	// ListOpen returns incidents still needing attention
	ListOpen(ctx context.Context) ([]*entity.Incident, error)
}

type incidentServiceImpl struct {
	repo       port.IncidentRepository
	txManager  port.TransactionManager
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewIncidentService creates a new IncidentService
func NewIncidentService(
	repo port.IncidentRepository,
	txManager port.TransactionManager,
	d dispatcher.Dispatcher,
	logger Logger,
) IncidentService {
	return &incidentServiceImpl{
		repo:       repo,
		txManager:  txManager,
		dispatcher: d,
		logger:     logger,
	}
}

// Report validates and stores a new open incident
func (s *incidentServiceImpl) Report(ctx context.Context, actor entity.Actor, input ReportIncidentInput) (*entity.Incident, error) {
	if err := authz.Authorize(actor, entity.KindIncident, authz.ActionCreate, actor.ID); err != nil {
		return nil, err
	}

	if err := validateIncidentInput(input); err != nil {
		return nil, err
	}

	incident := &entity.Incident{
		EmployeeID:   actor.ID,
		EmployeeName: actor.Name,
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Category:     input.Category,
		Priority:     input.Priority,
		Status:       entity.IncidentStatusOpen,
	}

	if err := s.repo.Create(ctx, incident); err != nil {
		s.logger.Error("Failed to create incident", "error", err, "employee_id", actor.ID)
		return nil, err
	}

	s.notify(ctx, event.New(event.TypeIncidentCreated, entity.KindIncident, incident.ID, actor.ID, map[string]interface{}{
		"category": incident.Category,
		"priority": incident.Priority,
	}))

	s.logger.Info("Incident reported", "id", incident.ID, "category", incident.Category, "priority", incident.Priority)
	return incident, nil
}

// Assign moves an open incident in-progress under the given assignee
func (s *incidentServiceImpl) Assign(ctx context.Context, actor entity.Actor, id, assignee string) (*entity.Incident, error) {
	return s.transition(ctx, actor, id, authz.ActionAssign, func(txCtx context.Context, in *entity.Incident) (*lifecycle.IncidentPatch, error) {
		return lifecycle.AssignIncident(txCtx, in, assignee)
	})
}

// Resolve stamps the resolution time and moves the incident to resolved
func (s *incidentServiceImpl) Resolve(ctx context.Context, actor entity.Actor, id string) (*entity.Incident, error) {
	return s.transition(ctx, actor, id, authz.ActionResolve, func(txCtx context.Context, in *entity.Incident) (*lifecycle.IncidentPatch, error) {
		return lifecycle.ResolveIncident(txCtx, in, time.Now())
	})
}

// Close moves a resolved incident to closed
func (s *incidentServiceImpl) Close(ctx context.Context, actor entity.Actor, id string) (*entity.Incident, error) {
	return s.transition(ctx, actor, id, authz.ActionClose, lifecycle.CloseIncident)
}

func (s *incidentServiceImpl) transition(
	ctx context.Context,
	actor entity.Actor,
	id string,
	action authz.Action,
	apply func(ctx context.Context, in *entity.Incident) (*lifecycle.IncidentPatch, error),
) (*entity.Incident, error) {
	var updated *entity.Incident

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		incident, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := authz.Authorize(actor, entity.KindIncident, action, incident.Owner()); err != nil {
			return err
		}

		patch, err := apply(txCtx, incident)
		if err != nil {
			return err
		}

		if action == authz.ActionAssign {
			if err := s.repo.UpdateAssignment(txCtx, id, patch.Status, patch.AssignedTo); err != nil {
				return fmt.Errorf("update assignment: %w", err)
			}
		} else {
			if err := s.repo.UpdateStatus(txCtx, id, patch.Status, patch.ResolvedAt); err != nil {
				return fmt.Errorf("update status: %w", err)
			}
		}

		updated, err = s.repo.GetByID(txCtx, id)
		return err
	})

	if err != nil {
		s.logger.Error("Incident transition failed", "error", err, "id", id, "action", action)
		return nil, err
	}

	s.notify(ctx, event.New(event.TypeIncidentUpdated, entity.KindIncident, id, actor.ID, map[string]interface{}{
		"status": updated.Status,
	}))

	s.logger.Info("Incident updated", "id", id, "status", updated.Status, "action", action)
	return updated, nil
}

// List returns the role-scoped collection, newest first
func (s *incidentServiceImpl) List(ctx context.Context, actor entity.Actor) ([]*entity.Incident, error) {
	if actor.IsAdmin() {
		return s.repo.List(ctx)
	}
	return s.repo.ListByEmployee(ctx, actor.ID)
}

// ListOpen returns incidents that are open or in-progress
func (s *incidentServiceImpl) ListOpen(ctx context.Context) ([]*entity.Incident, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.OpenOrInProgress(all), nil
}

func (s *incidentServiceImpl) notify(ctx context.Context, evt *event.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, evt); err != nil {
		s.logger.Error("Failed to dispatch event", "error", err, "event_type", evt.Type)
	}
}

func validateIncidentInput(input ReportIncidentInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", lifecycle.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", lifecycle.ErrInvalidInput)
	}
	if !entity.ValidCategory(input.Category) {
		return fmt.Errorf("%w: unknown category %q", lifecycle.ErrInvalidInput, input.Category)
	}
	if !entity.ValidIncidentPriority(input.Priority) {
		return fmt.Errorf("%w: unknown priority %q", lifecycle.ErrInvalidInput, input.Priority)
	}
	return nil
}
