// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the backend has no such task.
var ErrNotFound = errors.New("not found")

// Service defines the interface for task backend operations.
// All REST calls go through this interface.
// The tasklist client never imports the HTTP backend directly.
type Service interface {
	// ListCategories returns every category in backend order.
	ListCategories(ctx context.Context) ([]Category, error)

	// ListTasks returns all tasks owned by userID.
	ListTasks(ctx context.Context, userID string) ([]Task, error)

	// ListTasksInCategory returns the tasks of userID in one category.
	ListTasksInCategory(ctx context.Context, userID string, categoryID int) ([]Task, error)

	// GetTask returns a single task.
	GetTask(ctx context.Context, id int) (Task, error)

	// CreateTask creates a task.
	// The error is non-nil only when no response was obtained; any
	// response status, including non-2xx, is returned as Status.
	CreateTask(ctx context.Context, req CreateTaskRequest) (Status, error)

	// UpdateTask replaces the editable fields of a task.
	// Same error contract as CreateTask.
	UpdateTask(ctx context.Context, id int, req UpdateTaskRequest) (Status, error)

	// DeleteTask deletes a task.
	// Same error contract as CreateTask.
	DeleteTask(ctx context.Context, id int) (Status, error)

	// SetCompleted sets the completed flag of a task to 0 or 1.
	// Same error contract as CreateTask.
	SetCompleted(ctx context.Context, id int, completed int) (Status, error)
}
