// Package tasklist holds the front-end state machine of the task list: the
// entry form, the edit-or-create mode, and the rendered list, driven by a
// service.Service backend.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"tasklist/internal/service"
)

// User-facing notices.
const (
	NoticeTitleRequired = "Enter a title"
	NoticeUpdated       = "Task updated"
	NoticeAdded         = "Task added"
	NoticeError         = "Error"
	ConfirmDelete       = "Delete this task?"
)

var (
	// ErrValidation is returned by Submit when the title is blank.
	ErrValidation = errors.New("title is required")

	// ErrNotAccepted is returned when the backend answered with a status
	// the operation does not treat as success. No notice is shown.
	ErrNotAccepted = errors.New("request not accepted")

	// ErrDeclined is returned by DeleteTask when the user says no.
	ErrDeclined = errors.New("delete declined")
)

// UI is the blocking notification surface of a front end.
type UI interface {
	// Alert shows msg and returns once it has been acknowledged.
	Alert(msg string)
	// Confirm asks msg as a yes/no question.
	Confirm(msg string) bool
}

// Form holds the raw values of the entry controls.
type Form struct {
	Title       string
	Description string
	Category    string // option value, "" for no category
	DueDate     string
}

// Client is safe for concurrent use. Network calls are made without holding
// the lock.
type Client struct {
	svc  service.Service
	ui   UI
	log  logrus.FieldLogger
	user string

	mu         sync.Mutex
	editingID  *int
	categories []service.Category
	form       Form
	rows       []Row
	loaded     bool
}

// New returns a client for currentUser, which may be empty.
func New(svc service.Service, ui UI, currentUser string, log logrus.FieldLogger) *Client {
	return &Client{
		svc:  svc,
		ui:   ui,
		log:  log,
		user: currentUser,
	}
}

// CurrentUser returns the user id the client was created with.
func (c *Client) CurrentUser() string {
	return c.user
}

// Start performs the initial category and task loads concurrently and
// returns once both have settled.
func (c *Client) Start(ctx context.Context) error {
	var (
		wg              sync.WaitGroup
		catErr, taskErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		catErr = c.LoadCategories(ctx)
	}()
	go func() {
		defer wg.Done()
		taskErr = c.LoadTasks(ctx)
	}()
	wg.Wait()
	return errors.Join(catErr, taskErr)
}

// Reload refreshes categories, then tasks, so the rows resolve category
// names against the fresh list. The form and editing mode are kept.
func (c *Client) Reload(ctx context.Context) error {
	catErr := c.LoadCategories(ctx)
	return errors.Join(catErr, c.LoadTasks(ctx))
}

// LoadCategories fetches categories and rebuilds the category options.
// Failures are logged and leave the previous state intact.
func (c *Client) LoadCategories(ctx context.Context) error {
	categories, err := c.svc.ListCategories(ctx)
	if err != nil {
		c.log.WithError(err).Error("failed to load categories")
		return fmt.Errorf("load categories: %w", err)
	}

	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()

	c.log.WithField("count", len(categories)).Debug("categories loaded")
	return nil
}

// LoadTasks fetches the current user's tasks and re-renders the list.
// It does nothing when there is no current user.
func (c *Client) LoadTasks(ctx context.Context) error {
	if c.user == "" {
		return nil
	}
	tasks, err := c.svc.ListTasks(ctx, c.user)
	if err != nil {
		c.log.WithError(err).Error("failed to load tasks")
		return fmt.Errorf("load tasks: %w", err)
	}
	c.render(tasks)
	return nil
}

// LoadTasksInCategory is LoadTasks restricted to one category.
func (c *Client) LoadTasksInCategory(ctx context.Context, categoryID int) error {
	if c.user == "" {
		return nil
	}
	tasks, err := c.svc.ListTasksInCategory(ctx, c.user, categoryID)
	if err != nil {
		c.log.WithError(err).WithField("category", categoryID).Error("failed to load tasks")
		return fmt.Errorf("load tasks in category %d: %w", categoryID, err)
	}
	c.render(tasks)
	return nil
}

func (c *Client) render(tasks []service.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = RenderRows(tasks, c.categories)
	c.loaded = true
}

// Submit validates the form and either updates the task being edited or
// creates a new one. Updates succeed on any 2xx, creates only on 201.
func (c *Client) Submit(ctx context.Context) error {
	c.mu.Lock()
	form := c.form
	var editingID *int
	if c.editingID != nil {
		id := *c.editingID
		editingID = &id
	}
	c.mu.Unlock()

	title := strings.TrimSpace(form.Title)
	if title == "" {
		c.ui.Alert(NoticeTitleRequired)
		return ErrValidation
	}

	req := service.UpdateTaskRequest{
		Title:       title,
		Description: strings.TrimSpace(form.Description),
		CategoryID:  parseCategory(form.Category),
		DueDate:     optional(form.DueDate),
		Completed:   0,
	}

	if editingID != nil {
		return c.update(ctx, *editingID, req)
	}
	return c.create(ctx, req)
}

func (c *Client) update(ctx context.Context, id int, req service.UpdateTaskRequest) error {
	status, err := c.svc.UpdateTask(ctx, id, req)
	if err != nil {
		c.log.WithError(err).WithField("task", id).Error("failed to update task")
		c.ui.Alert(NoticeError)
		return fmt.Errorf("update task %d: %w", id, err)
	}
	if !status.OK() {
		c.log.WithFields(logrus.Fields{"task": id, "status": int(status)}).Debug("update not accepted")
		return fmt.Errorf("update task %d: %w (status %d)", id, ErrNotAccepted, status)
	}

	c.ui.Alert(NoticeUpdated)
	c.mu.Lock()
	c.editingID = nil
	c.form = Form{}
	c.mu.Unlock()

	_ = c.LoadTasks(ctx)
	return nil
}

func (c *Client) create(ctx context.Context, req service.UpdateTaskRequest) error {
	status, err := c.svc.CreateTask(ctx, service.CreateTaskRequest{UpdateTaskRequest: req, UserID: c.user})
	if err != nil {
		c.log.WithError(err).Error("failed to create task")
		c.ui.Alert(NoticeError)
		return fmt.Errorf("create task: %w", err)
	}
	if !status.Created() {
		c.log.WithField("status", int(status)).Debug("create not accepted")
		return fmt.Errorf("create task: %w (status %d)", ErrNotAccepted, status)
	}

	c.ui.Alert(NoticeAdded)
	c.ClearForm()

	_ = c.LoadTasks(ctx)
	return nil
}

// EditTask fetches a task, fills the form with its values and switches to
// editing mode.
func (c *Client) EditTask(ctx context.Context, id int) error {
	task, err := c.svc.GetTask(ctx, id)
	if err != nil {
		c.log.WithError(err).WithField("task", id).Error("failed to fetch task")
		c.ui.Alert(NoticeError)
		return fmt.Errorf("fetch task %d: %w", id, err)
	}

	form := Form{
		Title:       task.Title,
		Description: deref(task.Description),
		DueDate:     deref(task.DueDate),
	}
	if task.CategoryID != nil {
		form.Category = strconv.Itoa(*task.CategoryID)
	}

	c.mu.Lock()
	c.form = form
	c.editingID = &id
	c.mu.Unlock()
	return nil
}

// DeleteTask asks for confirmation and deletes the task, reloading the list
// on any 2xx.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	if !c.ui.Confirm(ConfirmDelete) {
		return ErrDeclined
	}

	status, err := c.svc.DeleteTask(ctx, id)
	if err != nil {
		c.log.WithError(err).WithField("task", id).Error("failed to delete task")
		c.ui.Alert(NoticeError)
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if !status.OK() {
		c.log.WithFields(logrus.Fields{"task": id, "status": int(status)}).Debug("delete not accepted")
		return fmt.Errorf("delete task %d: %w (status %d)", id, ErrNotAccepted, status)
	}

	_ = c.LoadTasks(ctx)
	return nil
}

// ToggleCompleted inverts current and sends it as the task's completed
// flag, reloading the list on any 2xx.
func (c *Client) ToggleCompleted(ctx context.Context, id int, current int) error {
	next := 1
	if current != 0 {
		next = 0
	}

	status, err := c.svc.SetCompleted(ctx, id, next)
	if err != nil {
		c.log.WithError(err).WithField("task", id).Error("failed to update completion")
		c.ui.Alert(NoticeError)
		return fmt.Errorf("toggle task %d: %w", id, err)
	}
	if !status.OK() {
		c.log.WithFields(logrus.Fields{"task": id, "status": int(status)}).Debug("toggle not accepted")
		return fmt.Errorf("toggle task %d: %w (status %d)", id, ErrNotAccepted, status)
	}

	_ = c.LoadTasks(ctx)
	return nil
}

// ClearForm empties every entry control. The editing mode is left alone.
func (c *Client) ClearForm() {
	c.mu.Lock()
	c.form = Form{}
	c.mu.Unlock()
}

// SetForm replaces the entry control values.
func (c *Client) SetForm(f Form) {
	c.mu.Lock()
	c.form = f
	c.mu.Unlock()
}

// Form returns the entry control values.
func (c *Client) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// EditingTaskID returns the id of the task being edited.
func (c *Client) EditingTaskID() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editingID == nil {
		return 0, false
	}
	return *c.editingID, true
}

// Categories returns the categories from the last successful load.
func (c *Client) Categories() []service.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]service.Category(nil), c.categories...)
}

// View returns a snapshot of the current display state.
func (c *Client) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Form:            c.form,
		SubmitLabel:     LabelAdd,
		CategoryOptions: CategoryOptions(c.categories),
		Rows:            append([]Row(nil), c.rows...),
		Loaded:          c.loaded,
	}
	if c.editingID != nil {
		v.SubmitLabel = LabelSave
		v.Editing = true
		v.EditingTaskID = *c.editingID
	}
	return v
}

func parseCategory(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &id
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
