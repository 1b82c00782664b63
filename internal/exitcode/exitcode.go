// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, conflicting flags).
	UserError = 1

	// AuthError indicates a missing, declined or rejected API token.
	AuthError = 2

	// BackendError indicates a Todoist API or network error.
	BackendError = 3
)
