package service

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/taskops-api/internal/domain"
	"github.com/phrazzld/taskops-api/internal/platform/logger"
	"github.com/phrazzld/taskops-api/internal/store"
)

const componentName = "task_service"

// errTaskIDCollision is reported when the store refuses a freshly generated ID.
var errTaskIDCollision = errors.New("task id already in use")

// CreateTaskParams holds the caller-supplied fields of a new task.
type CreateTaskParams struct {
	Title       string
	Description *string
	Priority    int
}

// TaskFilter narrows ListTasks. Nil fields do not filter; set fields must
// all match (logical AND).
type TaskFilter struct {
	Status   *domain.TaskStatus
	Priority *int
}

// Matches reports whether task passes every set criterion.
func (f TaskFilter) Matches(task domain.Task) bool {
	if f.Status != nil && task.Status != *f.Status {
		return false
	}
	if f.Priority != nil && task.Priority != *f.Priority {
		return false
	}
	return true
}

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask validates the input and stores a new pending task.
	// Returns a *domain.ValidationError when any field is invalid.
	CreateTask(ctx context.Context, params CreateTaskParams) (domain.Task, error)

	// GetTask retrieves a task by its ID.
	// Returns ErrTaskNotFound if it does not exist.
	GetTask(ctx context.Context, id uuid.UUID) (domain.Task, error)

	// ListTasks returns the tasks matching filter, oldest first.
	ListTasks(ctx context.Context, filter TaskFilter) ([]domain.Task, error)

	// UpdateTask replaces description, priority and status of an existing task.
	// Existence is checked before the update is validated, so an unknown ID
	// always yields ErrTaskNotFound.
	UpdateTask(ctx context.Context, id uuid.UUID, update domain.TaskUpdate) (domain.Task, error)

	// DeleteTask removes a task.
	// Returns ErrTaskNotFound if it does not exist.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the task store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With("component", componentName),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	task, err := domain.NewTask(params.Title, params.Description, params.Priority)
	if err != nil {
		log.Debug("rejected invalid task", "error", err)
		return domain.Task{}, err
	}

	if !s.taskStore.Add(ctx, task) {
		log.Error("failed to store new task", "task_id", task.ID)
		return domain.Task{}, NewTaskServiceError("create_task", "failed to store task", errTaskIDCollision)
	}

	log.Info("task created", "task_id", task.ID, "priority", task.Priority)
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	task, ok := s.taskStore.GetByID(ctx, id)
	if !ok {
		logger.ForComponent(ctx, s.logger, componentName).Debug("task not found", "task_id", id)
		return domain.Task{}, ErrTaskNotFound
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	all := s.taskStore.GetAll(ctx)

	tasks := make([]domain.Task, 0, len(all))
	for _, task := range all {
		if filter.Matches(task) {
			tasks = append(tasks, task)
		}
	}

	slices.SortFunc(tasks, func(a, b domain.Task) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	logger.ForComponent(ctx, s.logger, componentName).Debug("listed tasks",
		"total", len(all),
		"matched", len(tasks))
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	update domain.TaskUpdate,
) (domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	existing, ok := s.taskStore.GetByID(ctx, id)
	if !ok {
		log.Debug("task not found for update", "task_id", id)
		return domain.Task{}, ErrTaskNotFound
	}

	updated, err := existing.WithUpdate(update)
	if err != nil {
		log.Debug("rejected invalid task update", "task_id", id, "error", err)
		return domain.Task{}, err
	}

	// The task may have been deleted since it was read
	if !s.taskStore.Update(ctx, updated) {
		log.Debug("task deleted before update was applied", "task_id", id)
		return domain.Task{}, ErrTaskNotFound
	}

	log.Info("task updated",
		"task_id", id,
		"status", updated.Status,
		"priority", updated.Priority)
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	log := logger.ForComponent(ctx, s.logger, componentName)

	if !s.taskStore.Delete(ctx, id) {
		log.Debug("task not found for delete", "task_id", id)
		return ErrTaskNotFound
	}

	log.Info("task deleted", "task_id", id)
	return nil
}
