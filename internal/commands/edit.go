package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"tasklist/internal/exitcode"
	"tasklist/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// optionalString is a flag value that remembers whether it was given.
type optionalString struct {
	value string
	set   bool
}

func (s *optionalString) String() string { return s.value }

func (s *optionalString) Set(v string) error {
	s.value = v
	s.set = true
	return nil
}

// EditCmd implements the edit command: load a task into the form, overlay
// the given fields and save.
type EditCmd struct {
	title       optionalString
	description optionalString
	category    optionalString
	due         optionalString
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "tasklist edit [--title <text>] [--desc <text>] [--category <id>] [--due <date>] <id>"
}
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.description, c.category, c.due = optionalString{}, optionalString{}, optionalString{}, optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.description, "desc", "")
	fs.Var(&c.category, "category", "")
	fs.Var(&c.category, "c", "")
	fs.Var(&c.due, "due", "")
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !c.title.set && !c.description.set && !c.category.set && !c.due.set {
		fmt.Fprintln(env.ErrOut, "error: nothing to change")
		return exitcode.UserError
	}
	if code := validateCategory(env.ErrOut, c.category.value); code != exitcode.Success {
		return code
	}

	user, err := currentUser(env)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	client := newClient(env, user, false)
	if err := client.EditTask(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			fmt.Fprintf(env.ErrOut, "error: task not found: %d\n", id)
			return exitcode.UserError
		}
		fmt.Fprintf(env.ErrOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	form := client.Form()
	if c.title.set {
		form.Title = c.title.value
	}
	if c.description.set {
		form.Description = c.description.value
	}
	if c.category.set {
		form.Category = c.category.value
	}
	if c.due.set {
		form.DueDate = c.due.value
	}
	client.SetForm(form)

	if err := client.Submit(ctx); err != nil {
		return clientError(env, err)
	}
	return exitcode.Success
}
