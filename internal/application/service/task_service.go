package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/seatbook/seatbook/internal/application/authz"
	"github.com/seatbook/seatbook/internal/application/dispatcher"
	"github.com/seatbook/seatbook/internal/application/lifecycle"
	"github.com/seatbook/seatbook/internal/application/port"
	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/domain/event"
)

// CreateTaskInput carries the fields an admin submits when assigning work
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

// TaskService manages the task lifecycle
type TaskService interface {
	Create(ctx context.Context, actor entity.Actor, input CreateTaskInput) (*entity.Task, error)
	Start(ctx context.Context, actor entity.Actor, id string) (*entity.Task, error)
	Complete(ctx context.Context, actor entity.Actor, id string) (*entity.Task, error)

	// List returns all tasks for admins and the actor's assignments otherwise
	List(ctx context.Context, actor entity.Actor) ([]*entity.Task, error)
}

type taskServiceImpl struct {
	repo       port.TaskRepository
	userRepo   port.UserRepository
	txManager  port.TransactionManager
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	repo port.TaskRepository,
	userRepo port.UserRepository,
	txManager port.TransactionManager,
	d dispatcher.Dispatcher,
	logger Logger,
) TaskService {
	return &taskServiceImpl{
		repo:       repo,
		userRepo:   userRepo,
		txManager:  txManager,
		dispatcher: d,
		logger:     logger,
	}
}

// Create validates and stores a new pending task. The assignee must be a
// registered user.
func (s *taskServiceImpl) Create(ctx context.Context, actor entity.Actor, input CreateTaskInput) (*entity.Task, error) {
	if err := authz.Authorize(actor, entity.KindTask, authz.ActionCreate, actor.ID); err != nil {
		return nil, err
	}

	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, input.AssignedTo); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, fmt.Errorf("%w: assignee %q is not a registered user", lifecycle.ErrInvalidInput, input.AssignedTo)
		}
		return nil, err
	}

	task := &entity.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		AssignedTo:  input.AssignedTo,
		AssignedBy:  actor.ID,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Status:      entity.TaskStatusPending,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error("Failed to create task", "error", err, "assigned_to", input.AssignedTo)
		return nil, err
	}

	s.notify(ctx, event.New(event.TypeTaskCreated, entity.KindTask, task.ID, actor.ID, map[string]interface{}{
		"assigned_to": task.AssignedTo,
		"priority":    task.Priority,
	}))

	s.logger.Info("Task created", "id", task.ID, "assigned_to", task.AssignedTo, "assigned_by", actor.ID)
	return task, nil
}

// Start moves a pending task in-progress
func (s *taskServiceImpl) Start(ctx context.Context, actor entity.Actor, id string) (*entity.Task, error) {
	return s.transition(ctx, actor, id, authz.ActionStart, lifecycle.StartTask)
}

// Complete finishes an in-progress task and stamps the completion time
func (s *taskServiceImpl) Complete(ctx context.Context, actor entity.Actor, id string) (*entity.Task, error) {
	return s.transition(ctx, actor, id, authz.ActionComplete, func(txCtx context.Context, t *entity.Task) (*lifecycle.TaskPatch, error) {
		return lifecycle.CompleteTask(txCtx, t, time.Now())
	})
}

func (s *taskServiceImpl) transition(
	ctx context.Context,
	actor entity.Actor,
	id string,
	action authz.Action,
	apply func(ctx context.Context, t *entity.Task) (*lifecycle.TaskPatch, error),
) (*entity.Task, error) {
	var updated *entity.Task

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		task, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := authz.Authorize(actor, entity.KindTask, action, task.Owner()); err != nil {
			return err
		}

		patch, err := apply(txCtx, task)
		if err != nil {
			return err
		}

		if err := s.repo.UpdateProgress(txCtx, id, patch.Status, patch.CompletedAt); err != nil {
			return fmt.Errorf("update progress: %w", err)
		}

		updated, err = s.repo.GetByID(txCtx, id)
		return err
	})

	if err != nil {
		s.logger.Error("Task transition failed", "error", err, "id", id, "action", action)
		return nil, err
	}

	s.notify(ctx, event.New(event.TypeTaskUpdated, entity.KindTask, id, actor.ID, map[string]interface{}{
		"status": updated.Status,
	}))

	s.logger.Info("Task updated", "id", id, "status", updated.Status, "action", action)
	return updated, nil
}

// List returns the role-scoped collection, newest first
func (s *taskServiceImpl) List(ctx context.Context, actor entity.Actor) ([]*entity.Task, error) {
	if actor.IsAdmin() {
		return s.repo.List(ctx)
	}
	return s.repo.ListByAssignee(ctx, actor.ID)
}

func (s *taskServiceImpl) notify(ctx context.Context, evt *event.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, evt); err != nil {
		s.logger.Error("Failed to dispatch event", "error", err, "event_type", evt.Type)
	}
}

func validateTaskInput(input CreateTaskInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", lifecycle.ErrInvalidInput)
	}
	if strings.TrimSpace(input.AssignedTo) == "" {
		return fmt.Errorf("%w: assignee is required", lifecycle.ErrInvalidInput)
	}
	if !entity.ValidTaskPriority(input.Priority) {
		return fmt.Errorf("%w: unknown priority %q", lifecycle.ErrInvalidInput, input.Priority)
	}
	if _, err := time.Parse("2006-01-02", input.DueDate); err != nil {
		return fmt.Errorf("%w: bad due date %q", lifecycle.ErrInvalidInput, input.DueDate)
	}
	return nil
}
