// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including exit or interrupt
	// of the interactive menu.
	Success = 0

	// UserError indicates a user error (bad args, empty description, unknown id).
	UserError = 1

	// ConfigError indicates an unreadable or invalid config.yaml.
	ConfigError = 2

	// StorageError indicates the task data could not be opened or saved.
	StorageError = 3
)
