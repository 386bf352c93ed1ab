package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task.
// Any status may replace any other; there are no transition rules.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusDone       TaskStatus = "Done"
)

// Field limits for tasks.
const (
	TitleMinLength       = 3
	TitleMaxLength       = 60
	DescriptionMaxLength = 200
	PriorityMin          = 1
	PriorityMax          = 5
)

// TaskStatuses lists every known status in display order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusDone}
}

// ParseTaskStatus converts a status name to a TaskStatus, ignoring case.
func ParseTaskStatus(name string) (TaskStatus, error) {
	for _, s := range TaskStatuses() {
		if strings.EqualFold(name, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, name)
}

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

func (s TaskStatus) String() string {
	return string(s)
}

// Task is a single unit of work tracked by the service.
//
// Task is used as a value: the store keeps its own copy and callers never
// change a stored task in place. Updates build a new value with WithUpdate.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    int        `json:"priority"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskUpdate carries the fields an update may replace. Title, ID and
// CreatedAt are not part of it. A nil Description keeps the current one.
type TaskUpdate struct {
	Description *string
	Priority    int
	Status      TaskStatus
}

// NewTask creates a new pending Task with a fresh ID and creation time.
// Returns a *ValidationError listing every violated field if the input is invalid.
func NewTask(title string, description *string, priority int) (Task, error) {
	task := Task{
		ID:          uuid.New(),
		Title:       title,
		Description: cloneString(description),
		Priority:    priority,
		Status:      TaskStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return Task{}, err
	}

	return task, nil
}

// Validate checks every field of the task and reports all violations at once.
func (t Task) Validate() error {
	var violations []string

	if t.ID == uuid.Nil {
		violations = append(violations, "id cannot be empty")
	}
	if n := utf8.RuneCountInString(t.Title); n < TitleMinLength || n > TitleMaxLength {
		violations = append(violations, fmt.Sprintf(
			"title must be between %d and %d characters", TitleMinLength, TitleMaxLength))
	}
	violations = append(violations, validateMutable(t.Description, t.Priority, t.Status)...)

	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	return nil
}

// WithUpdate returns a copy of t with description, priority and status
// replaced by u. The receiver is left untouched.
// Title, ID and CreatedAt carry over unchanged.
func (t Task) WithUpdate(u TaskUpdate) (Task, error) {
	if violations := validateMutable(u.Description, u.Priority, u.Status); len(violations) > 0 {
		return Task{}, NewValidationError(violations...)
	}

	updated := t.Clone()
	updated.Priority = u.Priority
	updated.Status = u.Status
	if u.Description != nil {
		updated.Description = cloneString(u.Description)
	}

	return updated, nil
}

// Clone returns a deep copy of t. The copy shares no memory with t, so
// changing one never affects the other.
func (t Task) Clone() Task {
	c := t
	c.Description = cloneString(t.Description)
	return c
}

// validateMutable checks the fields an update is allowed to change.
func validateMutable(description *string, priority int, status TaskStatus) []string {
	var violations []string

	if description != nil && utf8.RuneCountInString(*description) > DescriptionMaxLength {
		violations = append(violations, fmt.Sprintf(
			"description must be at most %d characters", DescriptionMaxLength))
	}
	if priority < PriorityMin || priority > PriorityMax {
		violations = append(violations, fmt.Sprintf(
			"priority must be between %d and %d", PriorityMin, PriorityMax))
	}
	if !status.IsValid() {
		violations = append(violations, fmt.Sprintf(
			"status must be one of %s, %s, %s", TaskStatusPending, TaskStatusInProgress, TaskStatusDone))
	}

	return violations
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
