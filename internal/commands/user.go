package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"tasklist/internal/exitcode"
	"tasklist/internal/store"
)

func init() {
	Register(&UserCmd{})
}

// UserCmd shows, sets or clears the persisted current user.
type UserCmd struct {
	clear bool
}

func (c *UserCmd) Name() string       { return "user" }
func (c *UserCmd) Aliases() []string  { return nil }
func (c *UserCmd) Synopsis() string   { return "Show or set the current user" }
func (c *UserCmd) Usage() string      { return "tasklist user [--clear] [<id>]" }
func (c *UserCmd) NeedsBackend() bool { return false }

func (c *UserCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.clear, "clear", false, "")
}

func (c *UserCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}
	if c.clear && len(args) > 0 {
		fmt.Fprintln(env.ErrOut, "error: cannot use both --clear and a user id")
		return exitcode.UserError
	}

	s, err := env.Store()
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: open storage: %v\n", err)
		return exitcode.ConfigError
	}

	switch {
	case c.clear:
		if err := s.RemoveItem(store.CurrentUserKey); err != nil {
			fmt.Fprintf(env.ErrOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "ok")
		}

	case len(args) == 1:
		id := strings.TrimSpace(args[0])
		if !isAllDigits(id) {
			fmt.Fprintf(env.ErrOut, "error: invalid user id: %s\n", args[0])
			return exitcode.UserError
		}
		if err := s.SetItem(store.CurrentUserKey, id); err != nil {
			fmt.Fprintf(env.ErrOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "ok")
		}

	default:
		user, err := store.CurrentUser(s)
		if err != nil {
			fmt.Fprintf(env.ErrOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
		if user != "" {
			fmt.Fprintln(env.Out, user)
		} else if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "no current user")
		}
	}
	return exitcode.Success
}
