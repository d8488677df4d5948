// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty task, unknown ref).
	UserError = 1

	// ConfigError indicates an unreadable or invalid configuration.
	ConfigError = 2
)
