// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, unknown task).
	UserError = 1

	// ConfigError indicates a config/storage error, including a missing
	// current user.
	ConfigError = 2

	// BackendError indicates a backend/API/network error, or a response
	// that was not accepted as success.
	BackendError = 3
)
