package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestNewTask(t *testing.T) {
	t.Parallel()

	desc := "semi-skimmed"
	task, err := NewTask("Buy milk", &desc, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if task.Title != "Buy milk" {
		t.Errorf("Expected title %q, got %q", "Buy milk", task.Title)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("Expected status %s, got %s", TaskStatusPending, task.Status)
	}
	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}
	if task.CreatedAt.Location().String() != "UTC" {
		t.Errorf("Expected CreatedAt in UTC, got %s", task.CreatedAt.Location())
	}
	if task.Description == nil || *task.Description != desc {
		t.Fatalf("Expected description %q, got %v", desc, task.Description)
	}

	// The task must not alias the caller's string
	desc = "changed"
	if *task.Description != "semi-skimmed" {
		t.Error("Expected description to be copied, not aliased")
	}

	noDesc, err := NewTask("Walk dog", nil, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if noDesc.Description != nil {
		t.Errorf("Expected nil description, got %q", *noDesc.Description)
	}
}

func TestNewTaskValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		title          string
		description    *string
		priority       int
		wantViolations int
	}{
		{"title too short", "ab", nil, 3, 1},
		{"title too long", strings.Repeat("a", 61), nil, 3, 1},
		{"title at lower bound", "abc", nil, 3, 0},
		{"title at upper bound", strings.Repeat("a", 60), nil, 3, 0},
		{"multibyte title counts characters", "ñññ", nil, 3, 0},
		{"priority zero", "Valid title", nil, 0, 1},
		{"priority six", "Valid title", nil, 6, 1},
		{"description too long", "Valid title", strPtr(strings.Repeat("d", 201)), 3, 1},
		{"description at limit", "Valid title", strPtr(strings.Repeat("d", 200)), 3, 0},
		{"everything wrong", "a", strPtr(strings.Repeat("d", 201)), 9, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewTask(tt.title, tt.description, tt.priority)
			if tt.wantViolations == 0 {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected ErrValidation, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if len(verr.Violations) != tt.wantViolations {
				t.Errorf("Expected %d violations, got %d: %v", tt.wantViolations, len(verr.Violations), verr.Violations)
			}
		})
	}
}

func TestTaskWithUpdate(t *testing.T) {
	t.Parallel()

	original, err := NewTask("Buy milk", strPtr("whole"), 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	updated, err := original.WithUpdate(TaskUpdate{
		Description: strPtr("2%"),
		Priority:    4,
		Status:      TaskStatusInProgress,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.ID != original.ID || updated.Title != original.Title || !updated.CreatedAt.Equal(original.CreatedAt) {
		t.Error("Expected ID, title and creation time to carry over")
	}
	if *updated.Description != "2%" || updated.Priority != 4 || updated.Status != TaskStatusInProgress {
		t.Errorf("Unexpected updated task: %+v", updated)
	}

	// The original value is untouched
	if *original.Description != "whole" || original.Priority != 2 || original.Status != TaskStatusPending {
		t.Errorf("Expected original task to be unchanged, got %+v", original)
	}

	// A nil description keeps the current one
	kept, err := updated.WithUpdate(TaskUpdate{Priority: 1, Status: TaskStatusDone})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if kept.Description == nil || *kept.Description != "2%" {
		t.Errorf("Expected description to fall back to %q, got %v", "2%", kept.Description)
	}

	// Any status may follow any other
	back, err := kept.WithUpdate(TaskUpdate{Priority: 1, Status: TaskStatusPending})
	if err != nil || back.Status != TaskStatusPending {
		t.Errorf("Expected Done -> Pending to be allowed, got %v, %v", back.Status, err)
	}
}

func TestTaskWithUpdateValidation(t *testing.T) {
	t.Parallel()

	task, err := NewTask("Buy milk", nil, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = task.WithUpdate(TaskUpdate{
		Description: strPtr(strings.Repeat("x", 201)),
		Priority:    0,
		Status:      TaskStatus("Archived"),
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	if len(verr.Violations) != 3 {
		t.Errorf("Expected 3 violations, got %v", verr.Violations)
	}
}

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Pending", "pending", "INPROGRESS", "InProgress", "done"} {
		s, err := ParseTaskStatus(name)
		if err != nil {
			t.Errorf("Expected %q to parse, got %v", name, err)
		}
		if !s.IsValid() {
			t.Errorf("Expected parsed status %q to be valid", s)
		}
	}

	if _, err := ParseTaskStatus("Archived"); !errors.Is(err, ErrInvalidTaskStatus) {
		t.Errorf("Expected ErrInvalidTaskStatus, got %v", err)
	}
	if _, err := ParseTaskStatus(""); !errors.Is(err, ErrInvalidTaskStatus) {
		t.Errorf("Expected ErrInvalidTaskStatus for empty name, got %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewValidationError("a is wrong", "b is wrong")
	if err.Error() != "validation failed: a is wrong; b is wrong" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if NewValidationError().Error() != "validation failed" {
		t.Errorf("Unexpected empty message %q", NewValidationError().Error())
	}
}

func TestTaskClone(t *testing.T) {
	t.Parallel()

	task, err := NewTask("Buy milk", strPtr("whole"), 2)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}

	clone := task.Clone()
	if clone.Description == task.Description {
		t.Fatal("Clone() shares the description pointer")
	}

	*clone.Description = "changed"
	if *task.Description != "whole" {
		t.Errorf("original description = %q, want %q", *task.Description, "whole")
	}

	task.Description = nil
	if got := task.Clone(); got.Description != nil {
		t.Errorf("Clone() of nil description = %v, want nil", got.Description)
	}
}
