// Package rest implements the service.Service interface over the task
// backend's JSON REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"

	"tasklist/internal/config"
	"tasklist/internal/metrics"
	"tasklist/internal/service"
)

const (
	// APITimeout is the default timeout for API calls.
	APITimeout = 5 * time.Second

	// apiPrefix is prepended to every resource path.
	apiPrefix = "/api"

	// RequestIDHeader carries a per-request id for log correlation.
	RequestIDHeader = "X-Request-Id"
)

// Client implements service.Service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	log        logrus.FieldLogger
}

// New creates a client for the backend at cfg.BaseURL.
func New(cfg *config.Config, log logrus.FieldLogger) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base_url: %s", cfg.BaseURL)
	}

	c := NewWithHTTPClient(cfg.BaseURL, &http.Client{}, log)
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, log logrus.FieldLogger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    APITimeout,
		log:        log,
	}
}

// ListCategories returns every category.
func (c *Client) ListCategories(ctx context.Context) ([]service.Category, error) {
	var categories []service.Category
	if err := c.getJSON(ctx, "list_categories", "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListTasks returns all tasks owned by userID.
func (c *Client) ListTasks(ctx context.Context, userID string) ([]service.Task, error) {
	var tasks []service.Task
	path := "/tasks/user/" + url.PathEscape(userID)
	if err := c.getJSON(ctx, "list_tasks", path, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListTasksInCategory returns the tasks of userID in one category.
func (c *Client) ListTasksInCategory(ctx context.Context, userID string, categoryID int) ([]service.Task, error) {
	var tasks []service.Task
	path := fmt.Sprintf("/tasks/user/%s/category/%d", url.PathEscape(userID), categoryID)
	if err := c.getJSON(ctx, "list_tasks_in_category", path, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task.
func (c *Client) GetTask(ctx context.Context, id int) (service.Task, error) {
	var task service.Task
	if err := c.getJSON(ctx, "get_task", fmt.Sprintf("/tasks/%d", id), &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask posts a new task.
func (c *Client) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Status, error) {
	return c.send(ctx, "create_task", http.MethodPost, "/tasks", req)
}

// UpdateTask replaces the editable fields of a task.
func (c *Client) UpdateTask(ctx context.Context, id int, req service.UpdateTaskRequest) (service.Status, error) {
	return c.send(ctx, "update_task", http.MethodPut, fmt.Sprintf("/tasks/%d", id), req)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) (service.Status, error) {
	return c.send(ctx, "delete_task", http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil)
}

// SetCompleted patches the completed flag of a task.
func (c *Client) SetCompleted(ctx context.Context, id int, completed int) (service.Status, error) {
	body := service.CompletedRequest{Completed: completed}
	return c.send(ctx, "set_completed", http.MethodPatch, fmt.Sprintf("/tasks/%d/completed", id), body)
}

// getJSON fetches path and decodes a 2xx JSON body into out.
func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return wrapError(err)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid %s response: %w", op, err)
	}
	return nil
}

// send issues a mutation and reports its status. Only transport failures
// are errors.
func (c *Client) send(ctx context.Context, op, method, path string, body any) (service.Status, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.do(ctx, op, method, path, body)
	if err != nil {
		return 0, wrapError(err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return service.Status(resp.StatusCode), nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	metrics.ObserveRequest(op, status, err, time.Since(start))

	entry := c.log.WithFields(logrus.Fields{
		"operation":  op,
		"method":     method,
		"path":       apiPrefix + path,
		"request_id": requestID,
	})
	if err != nil {
		entry.WithError(err).Debug("backend request failed")
		return nil, err
	}
	entry.WithField("status", status).Debug("backend request")
	return resp, nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", service.ErrNotFound, strings.TrimSpace(apiErr.Body))
	}

	return err
}
