package commands

import (
	"context"
	"flag"
	"fmt"

	"tasklist/internal/exitcode"
	"tasklist/internal/output"
)

func init() {
	Register(&CategoriesCmd{})
}

// CategoriesCmd implements the categories command.
type CategoriesCmd struct{}

func (c *CategoriesCmd) Name() string       { return "categories" }
func (c *CategoriesCmd) Aliases() []string  { return nil }
func (c *CategoriesCmd) Synopsis() string   { return "List categories" }
func (c *CategoriesCmd) Usage() string      { return "tasklist categories" }
func (c *CategoriesCmd) NeedsBackend() bool { return true }

func (c *CategoriesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CategoriesCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	client := newClient(env, "", false)
	if err := client.LoadCategories(ctx); err != nil {
		fmt.Fprintf(env.ErrOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	categories := client.Categories()
	if len(categories) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "no categories found")
		}
		return exitcode.Success
	}
	for _, category := range categories {
		output.FormatCategory(env.Out, category)
	}
	return exitcode.Success
}
