package commands

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"tasklist/internal/exitcode"
	"tasklist/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tasklist` (no args) and `tasklist list --category <id>`.
type ListCmd struct {
	category string
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List the current user's tasks" }
func (c *ListCmd) Usage() string      { return "tasklist list [--category <id>]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	categoryID := 0
	if c.category != "" {
		id, err := strconv.Atoi(strings.TrimSpace(c.category))
		if err != nil || id < 1 {
			fmt.Fprintf(env.ErrOut, "error: invalid category id: %s\n", c.category)
			return exitcode.UserError
		}
		categoryID = id
	}

	user, code := requireUser(env)
	if code != exitcode.Success {
		return code
	}

	client := newClient(env, user, false)

	// Without categories every row falls back to "None"; the list is still
	// worth printing.
	_ = client.LoadCategories(ctx)

	var err error
	if categoryID != 0 {
		err = client.LoadTasksInCategory(ctx, categoryID)
	} else {
		err = client.LoadTasks(ctx)
	}
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	rows := client.View().Rows
	if len(rows) == 1 && rows[0].IsPlaceholder() && env.Config.Quiet {
		return exitcode.Success
	}
	output.FormatRows(env.Out, rows)
	return exitcode.Success
}
