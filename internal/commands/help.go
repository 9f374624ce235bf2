package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"tasklist/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasklist help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string) int {
	fmt.Fprint(env.Out, helpText)
	fmt.Fprintln(env.Out)
	fmt.Fprintln(env.Out, "Commands:")
	for _, cmd := range DefaultRegistry.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(env.Out, "  %-22s %s\n", name, cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  tasklist                                        List the current user's tasks
  tasklist list [common flags] [--category <id>]  List tasks, optionally in one category
  tasklist categories [common flags]
  tasklist add [common flags] [--desc <text>] [--category <id>] [--due <date>] <title...>
  tasklist edit [common flags] [--title <text>] [--desc <text>] [--category <id>] [--due <date>] <id>
  tasklist rm [common flags] [--yes] <id>
  tasklist toggle [common flags] <id>
  tasklist user [common flags] [--clear] [<id>]
  tasklist init [common flags] [--force]
  tasklist serve [common flags] [--listen <addr>]
  tasklist help
  tasklist version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
  --json-logs      Write logs as JSON

Environment:
  TASKLIST_BASE_URL, TASKLIST_TIMEOUT, TASKLIST_LISTEN override config.yaml
  LOG_MODE=quiet|debug, LOG_FORMAT=json|text override the log flags
`
