package commands

import (
	"context"
	"flag"
	"fmt"

	"tasklist/internal/exitcode"
)

func init() {
	Register(&InitCmd{})
}

// InitCmd writes a default config file.
type InitCmd struct {
	force bool
}

func (c *InitCmd) Name() string       { return "init" }
func (c *InitCmd) Aliases() []string  { return nil }
func (c *InitCmd) Synopsis() string   { return "Write a default config file" }
func (c *InitCmd) Usage() string      { return "tasklist init [--force]" }
func (c *InitCmd) NeedsBackend() bool { return false }

func (c *InitCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *InitCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	cfg := env.Config
	if cfg.HasConfigFile() && !c.force {
		fmt.Fprintf(env.ErrOut, "error: config already exists: %s (use --force to overwrite)\n", cfg.ConfigPath())
		return exitcode.UserError
	}

	if err := cfg.WriteDefault(); err != nil {
		fmt.Fprintf(env.ErrOut, "error: failed to write config: %v\n", err)
		return exitcode.ConfigError
	}

	if !cfg.Quiet {
		fmt.Fprintf(env.Out, "wrote %s\n", cfg.ConfigPath())
	}
	return exitcode.Success
}
