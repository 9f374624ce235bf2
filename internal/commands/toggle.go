package commands

import (
	"context"
	"flag"
	"fmt"

	"tasklist/internal/exitcode"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string   { return "Flip a task between open and completed" }
func (c *ToggleCmd) Usage() string      { return "tasklist toggle <id>" }
func (c *ToggleCmd) NeedsBackend() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, env *Env, args []string) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}

	user, code := requireUser(env)
	if code != exitcode.Success {
		return code
	}

	// The flag to invert comes from the rendered list, as a checkbox would.
	client := newClient(env, user, false)
	if err := client.LoadTasks(ctx); err != nil {
		fmt.Fprintf(env.ErrOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	row, ok := findRow(client.View().Rows, id)
	if !ok {
		fmt.Fprintf(env.ErrOut, "error: task not found: %d\n", id)
		return exitcode.UserError
	}

	if err := client.ToggleCompleted(ctx, id, row.Completed); err != nil {
		return clientError(env, err)
	}

	if !env.Config.Quiet {
		if row.Checked() {
			fmt.Fprintln(env.Out, "reopened")
		} else {
			fmt.Fprintln(env.Out, "completed")
		}
	}
	return exitcode.Success
}
