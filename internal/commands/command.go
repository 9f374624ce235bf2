// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"tasklist/internal/config"
	"tasklist/internal/service"
	"tasklist/internal/store"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the task backend.
	// Commands like help, version, user, init return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with positional args after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string) int
}

// StoreOpener opens the persistent client storage.
type StoreOpener func(cfg *config.Config) (store.Store, error)

// Env carries everything a command may need.
type Env struct {
	Config *config.Config
	// Service is nil if NeedsBackend() returns false.
	Service service.Service
	Log     logrus.FieldLogger

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	openStore StoreOpener
	storeOnce sync.Once
	store     store.Store
	storeErr  error
}

// NewEnv returns an Env whose storage is opened on first use.
func NewEnv(cfg *config.Config, svc service.Service, log logrus.FieldLogger, open StoreOpener, in io.Reader, out, errOut io.Writer) *Env {
	return &Env{
		Config:    cfg,
		Service:   svc,
		Log:       log,
		In:        in,
		Out:       out,
		ErrOut:    errOut,
		openStore: open,
	}
}

// Store opens the storage if needed and returns it.
func (e *Env) Store() (store.Store, error) {
	e.storeOnce.Do(func() {
		if e.openStore == nil {
			e.store = store.NewMemory()
			return
		}
		e.store, e.storeErr = e.openStore(e.Config)
	})
	return e.store, e.storeErr
}

// Close releases the storage if it was opened.
func (e *Env) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}
