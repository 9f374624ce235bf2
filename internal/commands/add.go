package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/exitcode"
	"tasklist/internal/tasklist"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	category    string
	due         string
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "tasklist add [--desc <text>] [--category <id>] [--due <date>] <title...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string) int {
	if code := validateCategory(env.ErrOut, c.category); code != exitcode.Success {
		return code
	}

	user, code := requireUser(env)
	if code != exitcode.Success {
		return code
	}

	client := newClient(env, user, false)
	client.SetForm(tasklist.Form{
		Title:       strings.Join(args, " "),
		Description: c.description,
		Category:    c.category,
		DueDate:     c.due,
	})
	if err := client.Submit(ctx); err != nil {
		return clientError(env, err)
	}
	return exitcode.Success
}

// validateCategory rejects category ids the form would silently drop.
func validateCategory(errOut io.Writer, category string) int {
	category = strings.TrimSpace(category)
	if category != "" && !isAllDigits(category) {
		fmt.Fprintf(errOut, "error: invalid category id: %s\n", category)
		return exitcode.UserError
	}
	return exitcode.Success
}
