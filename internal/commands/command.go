// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todoist-cli/internal/config"
	"todoist-cli/internal/exitcode"
	"todoist-cli/internal/service"
	"todoist-cli/internal/token"
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

	// NeedsAuth returns true if the command requires an API token.
	// The dispatcher then resolves the token (prompting if needed) and
	// passes a ready service to Run.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// svc is nil if NeedsAuth() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, svc service.Service, args []string) int
}

// Validator is implemented by commands that check their flags and
// arguments before the dispatcher asks for a token or builds a service.
type Validator interface {
	Validate(args []string) error
}

// Env carries the per-invocation state a command works with.
type Env struct {
	Config *config.Config
	Tokens *token.Store
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// NewEnv creates an Env whose token store lives in cfg's directory.
func NewEnv(cfg *config.Config, in io.Reader, out, errOut io.Writer) *Env {
	return &Env{
		Config: cfg,
		Tokens: token.NewStore(cfg.TokenPath()),
		In:     in,
		Out:    out,
		ErrOut: errOut,
	}
}

// Prompter returns a prompter reading the user's answers from env.In.
func (e *Env) Prompter() *token.Prompter {
	return token.NewPrompter(e.In, e.Out)
}

// RequireToken returns the stored token, prompting for and saving one if
// none is stored. Any failure is reported to the user before returning.
func (e *Env) RequireToken() (string, error) {
	tok, err := e.Tokens.GetOrPrompt(e.Prompter())
	if err != nil {
		if !errors.Is(err, token.ErrEmptyToken) {
			e.Errorf("%v", err)
		}
		e.Errorf("API token is required to use this command.")
		return "", err
	}
	return tok, nil
}

// Errorf prints a one-line error message to standard output.
func (e *Env) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(e.Out, "Error: "+format+"\n", args...)
}

// Infof prints an informational line unless --quiet is set.
func (e *Env) Infof(format string, args ...interface{}) {
	if e.Config != nil && e.Config.Quiet {
		return
	}
	fmt.Fprintf(e.Out, format+"\n", args...)
}

// backendFailure reports a failed remote call and picks the exit code.
func backendFailure(env *Env, what string, err error) int {
	env.Errorf("Failed to fetch %s: %v", what, err)
	if errors.Is(err, service.ErrUnauthorized) {
		fmt.Fprintf(env.Out, "Run '%s configure --force' to update your API token.\n", config.AppName)
		return exitcode.AuthError
	}
	return exitcode.BackendError
}
