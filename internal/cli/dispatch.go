package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"todoist-cli/internal/commands"
	"todoist-cli/internal/config"
	"todoist-cli/internal/exitcode"
	"todoist-cli/internal/service"
)

// ServiceFactory creates a Service authenticated with token.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, token string) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// in feeds interactive prompts. Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	// No args -> usage
	if len(args) == 0 {
		return d.dispatch(ctx, "help", nil, in, out, errOut)
	}

	cmdName := args[0]
	switch cmdName {
	case "--help", "-h":
		return d.dispatch(ctx, "help", nil, in, out, errOut)
	case "--version":
		return d.dispatch(ctx, "version", nil, in, out, errOut)
	}

	// Any other leading flag is an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(out, "Error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], in, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(out, "Error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, in, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(out, "Usage: %s\n", cmd.Usage())
			return exitcode.Success
		}
		fmt.Fprintln(out, "Error: "+flagError(err))
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(out, "Error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(out, "Error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	env := commands.NewEnv(cfg, in, out, errOut)

	if v, ok := cmd.(commands.Validator); ok {
		if err := v.Validate(positionalArgs); err != nil {
			env.Errorf("%v", err)
			return exitcode.UserError
		}
	}

	var svc service.Service
	if cmd.NeedsAuth() {
		tok, err := env.RequireToken()
		if err != nil {
			return exitcode.AuthError
		}

		svc, err = d.factory(ctx, tok)
		if err != nil {
			log.WithFields(log.Fields{
				"command": cmd.Name(),
				"cause":   err,
			}).Debug("service factory failed")
			if errors.Is(err, service.ErrUnauthorized) {
				env.Errorf("%v", err)
				return exitcode.AuthError
			}
			env.Errorf("backend error: %v", err)
			return exitcode.BackendError
		}
	}

	return cmd.Run(ctx, env, svc, positionalArgs)
}

// flagError rewrites a flag package error into the one-line message shown
// to the user.
func flagError(err error) string {
	errStr := err.Error()

	// Check for missing flag value
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + flagName
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}

	return errStr
}
