package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/exitcode"
	"tasklist/internal/store"
	"tasklist/internal/tasklist"
)

// terminalUI answers tasklist.UI on the terminal. Success notices go to out;
// failures are reported by the command itself with more detail.
type terminalUI struct {
	in     *bufio.Reader
	out    io.Writer
	quiet  bool
	assume bool // answer yes without asking
}

func newTerminalUI(env *Env, assumeYes bool) *terminalUI {
	in := env.In
	if in == nil {
		in = strings.NewReader("")
	}
	return &terminalUI{
		in:     bufio.NewReader(in),
		out:    env.Out,
		quiet:  env.Config.Quiet,
		assume: assumeYes,
	}
}

func (u *terminalUI) Alert(msg string) {
	switch msg {
	case tasklist.NoticeError, tasklist.NoticeTitleRequired:
		return
	}
	if !u.quiet {
		fmt.Fprintln(u.out, msg)
	}
}

func (u *terminalUI) Confirm(msg string) bool {
	if u.assume {
		return true
	}
	fmt.Fprintf(u.out, "%s [y/N] ", msg)
	line, err := u.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(u.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// currentUser reads the persisted current user. An empty result is not an
// error.
func currentUser(env *Env) (string, error) {
	s, err := env.Store()
	if err != nil {
		return "", fmt.Errorf("open storage: %w", err)
	}
	return store.CurrentUser(s)
}

// requireUser returns the current user or writes an error and a non-zero
// exit code.
func requireUser(env *Env) (string, int) {
	user, err := currentUser(env)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return "", exitcode.ConfigError
	}
	if user == "" {
		fmt.Fprintln(env.ErrOut, "error: no current user (run: tasklist user <id>)")
		return "", exitcode.ConfigError
	}
	return user, exitcode.Success
}

// newClient builds a tasklist client for the command's environment.
func newClient(env *Env, user string, assumeYes bool) *tasklist.Client {
	return tasklist.New(env.Service, newTerminalUI(env, assumeYes), user, env.Log)
}

// clientError maps a tasklist client error to a message and exit code.
func clientError(env *Env, err error) int {
	switch {
	case errors.Is(err, tasklist.ErrValidation):
		fmt.Fprintln(env.ErrOut, "error: title required")
		return exitcode.UserError
	case errors.Is(err, tasklist.ErrNotAccepted):
		fmt.Fprintf(env.ErrOut, "error: backend rejected request: %v\n", err)
		return exitcode.BackendError
	default:
		fmt.Fprintf(env.ErrOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
