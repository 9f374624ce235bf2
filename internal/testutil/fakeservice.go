// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"tasklist/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Every call is recorded as "METHOD /api/path", mirroring the REST routes.
type FakeService struct {
	mu         sync.RWMutex
	categories []service.Category
	tasks      []service.Task
	nextID     int
	calls      []string

	// Error injection for testing. A non-nil error is returned as a
	// transport failure and the call has no effect.
	ListCategoriesErr error
	ListTasksErr      error
	GetTaskErr        error
	CreateTaskErr     error
	UpdateTaskErr     error
	DeleteTaskErr     error
	SetCompletedErr   error

	// Status overrides. Zero means the default (201 for create, 200
	// otherwise). A create override other than 201, or any other non-2xx
	// override, leaves the data unchanged.
	CreateStatus       service.Status
	UpdateStatus       service.Status
	DeleteStatus       service.Status
	SetCompletedStatus service.Status
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 1}
}

// AddCategory adds a category.
func (f *FakeService) AddCategory(id int, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = append(f.categories, service.Category{ID: id, Name: name})
}

// AddTask stores t, assigning an id when t.ID is zero, and returns it.
func (f *FakeService) AddTask(t service.Task) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == 0 {
		t.ID = f.nextID
	}
	if t.ID >= f.nextID {
		f.nextID = t.ID + 1
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of all stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.tasks...)
}

// Task returns the stored task with id.
func (f *FakeService) Task(id int) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Calls returns the recorded calls in order.
func (f *FakeService) Calls() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times call was recorded.
func (f *FakeService) CallCount(call string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *FakeService) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// ListCategories implements service.Service.
func (f *FakeService) ListCategories(ctx context.Context) ([]service.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /api/categories")
	if f.ListCategoriesErr != nil {
		return nil, f.ListCategoriesErr
	}
	return append([]service.Category(nil), f.categories...), nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, userID string) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /api/tasks/user/%s", userID)
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.filter(userID, nil), nil
}

// ListTasksInCategory implements service.Service.
func (f *FakeService) ListTasksInCategory(ctx context.Context, userID string, categoryID int) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /api/tasks/user/%s/category/%d", userID, categoryID)
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.filter(userID, &categoryID), nil
}

func (f *FakeService) filter(userID string, categoryID *int) []service.Task {
	var result []service.Task
	for _, t := range f.tasks {
		if t.UserID == nil || strconv.Itoa(*t.UserID) != userID {
			continue
		}
		if categoryID != nil && (t.CategoryID == nil || *t.CategoryID != *categoryID) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id int) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /api/tasks/%d", id)
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	if i := f.index(id); i >= 0 {
		return f.tasks[i], nil
	}
	return service.Task{}, fmt.Errorf("%w: task %d", service.ErrNotFound, id)
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("POST /api/tasks")
	if f.CreateTaskErr != nil {
		return 0, f.CreateTaskErr
	}
	status := statusOr(f.CreateStatus, http.StatusCreated)
	if !status.Created() {
		return status, nil
	}
	uid, err := strconv.Atoi(req.UserID)
	if err != nil || req.Title == "" {
		return http.StatusBadRequest, nil
	}

	t := service.Task{
		ID:         f.nextID,
		Title:      req.Title,
		CategoryID: req.CategoryID,
		UserID:     &uid,
		DueDate:    req.DueDate,
		Completed:  req.Completed,
	}
	if req.Description != "" {
		desc := req.Description
		t.Description = &desc
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return status, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int, req service.UpdateTaskRequest) (service.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PUT /api/tasks/%d", id)
	if f.UpdateTaskErr != nil {
		return 0, f.UpdateTaskErr
	}
	status := statusOr(f.UpdateStatus, http.StatusOK)
	if !status.OK() {
		return status, nil
	}
	i := f.index(id)
	if i < 0 {
		return http.StatusNotFound, nil
	}

	t := &f.tasks[i]
	t.Title = req.Title
	t.CategoryID = req.CategoryID
	t.DueDate = req.DueDate
	t.Completed = req.Completed
	t.Description = nil
	if req.Description != "" {
		desc := req.Description
		t.Description = &desc
	}
	return status, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) (service.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DELETE /api/tasks/%d", id)
	if f.DeleteTaskErr != nil {
		return 0, f.DeleteTaskErr
	}
	status := statusOr(f.DeleteStatus, http.StatusOK)
	if !status.OK() {
		return status, nil
	}
	i := f.index(id)
	if i < 0 {
		return http.StatusNotFound, nil
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return status, nil
}

// SetCompleted implements service.Service.
func (f *FakeService) SetCompleted(ctx context.Context, id int, completed int) (service.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PATCH /api/tasks/%d/completed", id)
	if f.SetCompletedErr != nil {
		return 0, f.SetCompletedErr
	}
	status := statusOr(f.SetCompletedStatus, http.StatusOK)
	if !status.OK() {
		return status, nil
	}
	i := f.index(id)
	if i < 0 {
		return http.StatusNotFound, nil
	}
	f.tasks[i].Completed = completed
	return status, nil
}

func (f *FakeService) index(id int) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func statusOr(override service.Status, def int) service.Status {
	if override != 0 {
		return override
	}
	return service.Status(def)
}
