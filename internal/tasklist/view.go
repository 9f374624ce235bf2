package tasklist

import (
	"strconv"

	"tasklist/internal/service"
)

// Display strings.
const (
	LabelAdd  = "Add Task"
	LabelSave = "Save Task"

	// NoCategoryOption labels the leading empty-valued category option.
	NoCategoryOption = "No category"

	// NoCategoryName is shown for tasks whose category cannot be resolved.
	NoCategoryName = "None"

	// NoTasksPlaceholder is the single row shown for an empty list.
	NoTasksPlaceholder = "No tasks"
)

// Option is one entry of the category selection control.
type Option struct {
	Value string
	Label string
}

// Row describes one line of the rendered task list.
type Row struct {
	// Placeholder is set only on the row shown for an empty list; all other
	// fields are zero on that row.
	Placeholder string

	TaskID       int
	Title        string
	Description  string
	CategoryName string
	Completed    int
}

// IsPlaceholder reports whether r is the empty-list placeholder.
func (r Row) IsPlaceholder() bool {
	return r.Placeholder != ""
}

// Checked reports whether the row's checkbox is ticked.
func (r Row) Checked() bool {
	return r.Completed != 0
}

// View is a snapshot of everything a front end needs to draw the page.
type View struct {
	Form            Form
	SubmitLabel     string
	Editing         bool
	EditingTaskID   int
	CategoryOptions []Option
	Rows            []Row
	Loaded          bool // false until the first successful task load
}

// CategoryOptions maps categories to selection options, led by the
// "no category" sentinel.
func CategoryOptions(categories []service.Category) []Option {
	options := make([]Option, 0, len(categories)+1)
	options = append(options, Option{Value: "", Label: NoCategoryOption})
	for _, c := range categories {
		options = append(options, Option{Value: strconv.Itoa(c.ID), Label: c.Name})
	}
	return options
}

// RenderRows maps tasks to rows, resolving category names against
// categories. An empty task list yields exactly one placeholder row.
func RenderRows(tasks []service.Task, categories []service.Category) []Row {
	if len(tasks) == 0 {
		return []Row{{Placeholder: NoTasksPlaceholder}}
	}

	names := make(map[int]string, len(categories))
	for _, c := range categories {
		if _, dup := names[c.ID]; !dup {
			names[c.ID] = c.Name
		}
	}

	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		row := Row{
			TaskID:       t.ID,
			Title:        t.Title,
			Description:  deref(t.Description),
			CategoryName: NoCategoryName,
			Completed:    t.Completed,
		}
		if t.CategoryID != nil {
			if name, ok := names[*t.CategoryID]; ok {
				row.CategoryName = name
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
