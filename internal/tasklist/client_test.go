package tasklist_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/logger"
	"tasklist/internal/service"
	"tasklist/internal/tasklist"
	"tasklist/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func newClient(t *testing.T, user string, answers ...bool) (*tasklist.Client, *testutil.FakeService, *testutil.ScriptedUI) {
	t.Helper()
	svc := testutil.NewFakeService()
	svc.AddCategory(1, "Work")
	svc.AddCategory(2, "Home")
	ui := testutil.NewScriptedUI(answers...)
	return tasklist.New(svc, ui, user, logger.Discard()), svc, ui
}

func TestStart_LoadsCategoriesAndTasks(t *testing.T) {
	c, svc, _ := newClient(t, "7")
	svc.AddTask(service.Task{Title: "Write report", UserID: ptr(7), CategoryID: ptr(1)})
	svc.AddTask(service.Task{Title: "Someone else", UserID: ptr(8)})

	require.NoError(t, c.Start(context.Background()))

	v := c.View()
	assert.True(t, v.Loaded)
	assert.Equal(t, tasklist.LabelAdd, v.SubmitLabel)
	assert.Equal(t, []tasklist.Option{
		{Value: "", Label: tasklist.NoCategoryOption},
		{Value: "1", Label: "Work"},
		{Value: "2", Label: "Home"},
	}, v.CategoryOptions)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Write report", v.Rows[0].Title)
}

func TestStart_NoUserSkipsTaskLoad(t *testing.T) {
	c, svc, _ := newClient(t, "")

	require.NoError(t, c.Start(context.Background()))

	assert.Equal(t, []string{"GET /api/categories"}, svc.Calls())
	assert.False(t, c.View().Loaded)
	assert.Len(t, c.View().CategoryOptions, 3)
}

func TestStart_FailuresAreSilent(t *testing.T) {
	c, svc, ui := newClient(t, "7")
	svc.ListCategoriesErr = errors.New("connection refused")
	svc.ListTasksErr = errors.New("connection refused")

	err := c.Start(context.Background())

	require.Error(t, err)
	assert.Empty(t, ui.Alerts())
	v := c.View()
	assert.False(t, v.Loaded)
	assert.Equal(t, []tasklist.Option{{Value: "", Label: tasklist.NoCategoryOption}}, v.CategoryOptions)
}

func TestReload_RecoversAndKeepsForm(t *testing.T) {
	c, svc, _ := newClient(t, "7")
	svc.AddTask(service.Task{Title: "Write report", UserID: ptr(7), CategoryID: ptr(1)})
	require.NoError(t, c.EditTask(context.Background(), 1))
	c.SetForm(tasklist.Form{Title: "draft"})

	svc.ListCategoriesErr = errors.New("connection refused")
	svc.ListTasksErr = errors.New("connection refused")
	require.Error(t, c.Reload(context.Background()))
	assert.False(t, c.View().Loaded)

	svc.ListCategoriesErr = nil
	svc.ListTasksErr = nil
	require.NoError(t, c.Reload(context.Background()))

	v := c.View()
	assert.True(t, v.Loaded)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Work", v.Rows[0].CategoryName)
	assert.Equal(t, "draft", v.Form.Title)
	assert.Equal(t, 1, v.EditingTaskID)
	assert.Equal(t, []string{"GET /api/categories", "GET /api/tasks/user/7"}, svc.Calls()[len(svc.Calls())-2:])
}

func TestLoadTasksInCategory(t *testing.T) {
	c, svc, _ := newClient(t, "7")
	svc.AddTask(service.Task{Title: "a", UserID: ptr(7), CategoryID: ptr(1)})
	svc.AddTask(service.Task{Title: "b", UserID: ptr(7), CategoryID: ptr(2)})

	require.NoError(t, c.LoadTasksInCategory(context.Background(), 2))

	rows := c.View().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0].Title)
	assert.Equal(t, 1, svc.CallCount("GET /api/tasks/user/7/category/2"))
}

func TestSubmit_BlankTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		c, svc, ui := newClient(t, "7")
		c.SetForm(tasklist.Form{Title: title, Description: "desc"})

		err := c.Submit(context.Background())

		assert.ErrorIs(t, err, tasklist.ErrValidation)
		assert.Empty(t, svc.Calls(), "title %q", title)
		assert.Equal(t, []string{tasklist.NoticeTitleRequired}, ui.Alerts())
	}
}

func TestSubmit_Create(t *testing.T) {
	c, svc, ui := newClient(t, "7")
	require.NoError(t, c.LoadCategories(context.Background()))
	c.SetForm(tasklist.Form{Title: "  Buy milk  ", Description: " 2 liters ", Category: "2", DueDate: "2026-01-02"})

	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, []string{tasklist.NoticeAdded}, ui.Alerts())
	assert.Equal(t, tasklist.Form{}, c.Form())
	assert.Equal(t, []string{"GET /api/categories", "POST /api/tasks", "GET /api/tasks/user/7"}, svc.Calls())

	tasks := svc.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, "2 liters", *tasks[0].Description)
	assert.Equal(t, 2, *tasks[0].CategoryID)
	assert.Equal(t, "2026-01-02", *tasks[0].DueDate)
	assert.Equal(t, 7, *tasks[0].UserID)

	rows := c.View().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "Home", rows[0].CategoryName)
}

func TestSubmit_CreateOptionalFieldsAbsent(t *testing.T) {
	c, svc, _ := newClient(t, "7")
	c.SetForm(tasklist.Form{Title: "x", Category: ""})

	require.NoError(t, c.Submit(context.Background()))

	tasks := svc.Tasks()
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].CategoryID)
	assert.Nil(t, tasks[0].DueDate)
}

func TestSubmit_CreateRequires201(t *testing.T) {
	for _, status := range []service.Status{http.StatusOK, http.StatusNoContent, http.StatusBadRequest, http.StatusInternalServerError} {
		c, svc, ui := newClient(t, "7")
		svc.CreateStatus = status
		form := tasklist.Form{Title: "Buy milk"}
		c.SetForm(form)

		err := c.Submit(context.Background())

		assert.ErrorIs(t, err, tasklist.ErrNotAccepted, "status %d", status)
		assert.Equal(t, form, c.Form(), "status %d", status)
		assert.Empty(t, ui.Alerts(), "status %d", status)
		assert.Equal(t, []string{"POST /api/tasks"}, svc.Calls(), "status %d", status)
		assert.Empty(t, svc.Tasks(), "status %d", status)
	}
}

func TestSubmit_CreateTransportError(t *testing.T) {
	c, svc, ui := newClient(t, "7")
	svc.CreateTaskErr = errors.New("connection refused")
	form := tasklist.Form{Title: "Buy milk"}
	c.SetForm(form)

	err := c.Submit(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, tasklist.ErrNotAccepted)
	assert.Equal(t, []string{tasklist.NoticeError}, ui.Alerts())
	assert.Equal(t, form, c.Form())
}

func TestEditTask_PopulatesForm(t *testing.T) {
	c, svc, _ := newClient(t, "7")
	task := svc.AddTask(service.Task{
		Title:       "Old",
		Description: ptr("old desc"),
		CategoryID:  ptr(1),
		UserID:      ptr(7),
		DueDate:     ptr("2026-03-04"),
	})

	require.NoError(t, c.EditTask(context.Background(), task.ID))

	v := c.View()
	assert.Equal(t, tasklist.Form{Title: "Old", Description: "old desc", Category: "1", DueDate: "2026-03-04"}, v.Form)
	assert.Equal(t, tasklist.LabelSave, v.SubmitLabel)
	assert.True(t, v.Editing)
	assert.Equal(t, task.ID, v.EditingTaskID)
}

func TestEditTask_NullFieldsBecomeEmpty(t *testing.T) {
	c, svc, _ := newClient(t, "7")
	task := svc.AddTask(service.Task{Title: "Bare", UserID: ptr(7)})

	require.NoError(t, c.EditTask(context.Background(), task.ID))

	assert.Equal(t, tasklist.Form{Title: "Bare"}, c.Form())
}

func TestEditTask_FetchError(t *testing.T) {
	c, _, ui := newClient(t, "7")

	err := c.EditTask(context.Background(), 99)

	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, []string{tasklist.NoticeError}, ui.Alerts())
	_, editing := c.EditingTaskID()
	assert.False(t, editing)
	assert.Equal(t, tasklist.LabelAdd, c.View().SubmitLabel)
}

func TestSubmit_UpdatesEditedTask(t *testing.T) {
	c, svc, ui := newClient(t, "7")
	task := svc.AddTask(service.Task{Title: "Old", UserID: ptr(7), Completed: 1})
	require.NoError(t, c.EditTask(context.Background(), task.ID))

	form := c.Form()
	form.Title = "New"
	c.SetForm(form)
	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, []string{tasklist.NoticeUpdated}, ui.Alerts())
	assert.Equal(t, 1, svc.CallCount("PUT /api/tasks/1"))
	assert.Zero(t, svc.CallCount("POST /api/tasks"))

	tasks := svc.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "New", tasks[0].Title)
	assert.Equal(t, 0, tasks[0].Completed)

	v := c.View()
	assert.False(t, v.Editing)
	assert.Equal(t, tasklist.LabelAdd, v.SubmitLabel)
	assert.Equal(t, tasklist.Form{}, v.Form)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "New", v.Rows[0].Title)
}

func TestSubmit_UpdateAcceptsAny2xx(t *testing.T) {
	c, svc, ui := newClient(t, "7")
	task := svc.AddTask(service.Task{Title: "Old", UserID: ptr(7)})
	svc.UpdateStatus = http.StatusNoContent
	require.NoError(t, c.EditTask(context.Background(), task.ID))

	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, []string{tasklist.NoticeUpdated}, ui.Alerts())
	_, editing := c.EditingTaskID()
	assert.False(t, editing)
}

func TestSubmit_UpdateNotAcceptedIsSilent(t *testing.T) {
	c, svc, ui := newClient(t, "7")
	task := svc.AddTask(service.Task{Title: "Old", UserID: ptr(7)})
	svc.UpdateStatus = http.StatusBadRequest
	require.NoError(t, c.EditTask(context.Background(), task.ID))

	err := c.Submit(context.Background())

	assert.ErrorIs(t, err, tasklist.ErrNotAccepted)
	assert.Empty(t, ui.Alerts())
	id, editing := c.EditingTaskID()
	assert.True(t, editing)
	assert.Equal(t, task.ID, id)
	assert.Equal(t, "Old", c.Form().Title)
}

func TestSubmit_UpdateTransportError(t *testing.T) {
	c, svc, ui := newClient(t, "7")
	task := svc.AddTask(service.Task{Title: "Old", UserID: ptr(7)})
	svc.UpdateTaskErr = errors.New("connection reset")
	require.NoError(t, c.EditTask(context.Background(), task.ID))

	require.Error(t, c.Submit(context.Background()))

	assert.Equal(t, []string{tasklist.NoticeError}, ui.Alerts())
	assert.Equal(t, tasklist.LabelSave, c.View().SubmitLabel)
}

func TestClearForm_KeepsEditingMode(t *testing.T) {
	c, svc, _ := newClient(t, "7")
	task := svc.AddTask(service.Task{Title: "Old", UserID: ptr(7)})
	require.NoError(t, c.EditTask(context.Background(), task.ID))

	c.ClearForm()

	v := c.View()
	assert.Equal(t, tasklist.Form{}, v.Form)
	assert.True(t, v.Editing)
}

func TestToggleCompleted_InvertsFlag(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{current: 0, want: 1},
		{current: 1, want: 0},
	}
	for _, tt := range tests {
		c, svc, _ := newClient(t, "7")
		task := svc.AddTask(service.Task{Title: "t", UserID: ptr(7), Completed: tt.current})

		require.NoError(t, c.ToggleCompleted(context.Background(), task.ID, tt.current))

		got, ok := svc.Task(task.ID)
		require.True(t, ok)
		assert.Equal(t, tt.want, got.Completed)
		rows := c.View().Rows
		require.Len(t, rows, 1)
		assert.Equal(t, tt.want == 1, rows[0].Checked())
	}
}

func TestToggleCompleted_Failures(t *testing.T) {
	c, svc, ui := newClient(t, "7")
	task := svc.AddTask(service.Task{Title: "t", UserID: ptr(7)})

	svc.SetCompletedStatus = http.StatusInternalServerError
	assert.ErrorIs(t, c.ToggleCompleted(context.Background(), task.ID, 0), tasklist.ErrNotAccepted)
	assert.Empty(t, ui.Alerts())

	svc.SetCompletedErr = errors.New("timeout")
	require.Error(t, c.ToggleCompleted(context.Background(), task.ID, 0))
	assert.Equal(t, []string{tasklist.NoticeError}, ui.Alerts())
	assert.Zero(t, svc.CallCount("GET /api/tasks/user/7"))
}

func TestDeleteTask_Confirmed(t *testing.T) {
	c, svc, ui := newClient(t, "7", true)
	task := svc.AddTask(service.Task{Title: "t", UserID: ptr(7)})
	require.NoError(t, c.LoadTasks(context.Background()))

	require.NoError(t, c.DeleteTask(context.Background(), task.ID))

	assert.Equal(t, []string{tasklist.ConfirmDelete}, ui.Prompts())
	assert.Empty(t, svc.Tasks())
	rows := c.View().Rows
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsPlaceholder())
}

func TestDeleteTask_Declined(t *testing.T) {
	c, svc, _ := newClient(t, "7", false)
	task := svc.AddTask(service.Task{Title: "t", UserID: ptr(7)})
	require.NoError(t, c.LoadTasks(context.Background()))
	before := c.View().Rows
	callsBefore := svc.Calls()

	err := c.DeleteTask(context.Background(), task.ID)

	assert.ErrorIs(t, err, tasklist.ErrDeclined)
	assert.Equal(t, callsBefore, svc.Calls())
	assert.Equal(t, before, c.View().Rows)
	assert.Len(t, svc.Tasks(), 1)
}

func TestDeleteTask_Failures(t *testing.T) {
	c, svc, ui := newClient(t, "7", true, true)
	task := svc.AddTask(service.Task{Title: "t", UserID: ptr(7)})

	svc.DeleteStatus = http.StatusNotFound
	assert.ErrorIs(t, c.DeleteTask(context.Background(), task.ID), tasklist.ErrNotAccepted)
	assert.Empty(t, ui.Alerts())

	svc.DeleteTaskErr = errors.New("refused")
	require.Error(t, c.DeleteTask(context.Background(), task.ID))
	assert.Equal(t, []string{tasklist.NoticeError}, ui.Alerts())
	assert.Len(t, svc.Tasks(), 1)
}

func TestRender_FullReplace(t *testing.T) {
	c, svc, _ := newClient(t, "7")
	first := svc.AddTask(service.Task{Title: "first", UserID: ptr(7)})
	require.NoError(t, c.LoadTasks(context.Background()))
	require.Len(t, c.View().Rows, 1)

	svc.AddTask(service.Task{Title: "second", UserID: ptr(7)})
	require.NoError(t, c.LoadTasks(context.Background()))

	rows := c.View().Rows
	require.Len(t, rows, 2)
	assert.Equal(t, first.ID, rows[0].TaskID)
	assert.Equal(t, "second", rows[1].Title)
}

func TestClient_ConcurrentUse(t *testing.T) {
	c, svc, _ := newClient(t, "7")
	for i := 0; i < 5; i++ {
		svc.AddTask(service.Task{Title: "t", UserID: ptr(7)})
	}

	var wg sync.WaitGroup
	for i := 1; i <= 5; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			_ = c.ToggleCompleted(context.Background(), id, 0)
		}(i)
		go func() {
			defer wg.Done()
			_ = c.View()
		}()
	}
	wg.Wait()

	for _, task := range svc.Tasks() {
		assert.Equal(t, 1, task.Completed)
	}
}
