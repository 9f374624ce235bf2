// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Task represents a single task as returned by the backend.
type Task struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	CategoryID  *int    `json:"categoryId"`
	UserID      *int    `json:"userId"`
	DueDate     *string `json:"dueDate"`
	Completed   int     `json:"completed"` // 0 or 1
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// IsCompleted reports whether the completed flag is set.
func (t Task) IsCompleted() bool {
	return t.Completed != 0
}

// Category represents a named grouping referenced by tasks.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}.
// Nil pointers are sent as JSON null.
type UpdateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CategoryID  *int    `json:"category_id"`
	DueDate     *string `json:"due_date"`
	Completed   int     `json:"completed"`
}

// CreateTaskRequest is the body of POST /api/tasks: the update payload plus
// the owning user.
type CreateTaskRequest struct {
	UpdateTaskRequest
	UserID string `json:"-"`
}

// MarshalJSON encodes user_id as a number when UserID is an integer string,
// since the backend reads it as a number.
func (r CreateTaskRequest) MarshalJSON() ([]byte, error) {
	var userID any = r.UserID
	if n, err := strconv.Atoi(r.UserID); err == nil {
		userID = n
	}
	return json.Marshal(struct {
		UpdateTaskRequest
		UserID any `json:"user_id"`
	}{r.UpdateTaskRequest, userID})
}

// CompletedRequest is the body of PATCH /api/tasks/{id}/completed.
type CompletedRequest struct {
	Completed int `json:"completed"`
}

// Status is the HTTP status code of a mutation response.
type Status int

// OK reports whether the status is in the 2xx range.
func (s Status) OK() bool {
	return s >= 200 && s < 300
}

// Created reports whether the status is exactly 201.
func (s Status) Created() bool {
	return s == http.StatusCreated
}
