package commands

import (
	"context"
	"flag"
	"fmt"

	"tasklist/internal/exitcode"
	"tasklist/internal/web"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd serves the task list page over HTTP until interrupted.
type ServeCmd struct {
	listen string
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Serve the task list page" }
func (c *ServeCmd) Usage() string      { return "tasklist serve [--listen <addr>]" }
func (c *ServeCmd) NeedsBackend() bool { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listen, "listen", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	addr := c.listen
	if addr == "" {
		addr = env.Config.Listen
	}

	user, err := currentUser(env)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	if user == "" {
		env.Log.Warn("no current user set; the task list will stay empty")
	}

	srv := web.New(env.Service, user, env.Log)
	_ = srv.Start(ctx)

	if !env.Config.Quiet {
		fmt.Fprintf(env.Out, "listening on http://%s\n", addr)
	}
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	return exitcode.Success
}
