package api

import (
	"time"

	"github.com/phrazzld/taskops-api/internal/domain"
)

// CreateTaskRequest defines the payload for the task creation endpoint.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,min=3,max=60"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Priority    int     `json:"priority"    validate:"min=1,max=5"`
}

// UpdateTaskRequest defines the payload for the task update endpoint.
// Title is deliberately absent: it cannot change after creation.
type UpdateTaskRequest struct {
	Description *string `json:"description" validate:"omitempty,max=200"`
	Priority    int     `json:"priority"    validate:"min=1,max=5"`
	Status      string  `json:"status"      validate:"required,task_status"`
}

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status.String(),
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt,
	}
}

// tasksToResponse converts a slice of tasks, never returning nil so the
// JSON encoding is always an array.
func tasksToResponse(tasks []domain.Task) []TaskResponse {
	resp := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, taskToResponse(task))
	}
	return resp
}
