package commands

import (
	"context"
	"flag"
	"fmt"

	"todoist-cli/internal/config"
	"todoist-cli/internal/exitcode"
	"todoist-cli/internal/service"
	"todoist-cli/internal/token"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd implements the status command.
type StatusCmd struct{}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return nil }
func (c *StatusCmd) Synopsis() string  { return "Show version and token status" }
func (c *StatusCmd) Usage() string     { return "todoist-cli status [common flags]" }
func (c *StatusCmd) NeedsAuth() bool   { return false }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string) int {
	fmt.Fprintf(env.Out, "Todoist CLI v%s\n", Version)

	if tok, ok := env.Tokens.Stored(); ok {
		fmt.Fprintf(env.Out, "Token: %s\n", token.Mask(tok))
	} else {
		fmt.Fprintf(env.Out, "No token configured. Run '%s configure' to set one.\n", config.AppName)
	}
	fmt.Fprintf(env.Out, "Token file: %s\n", env.Tokens.Path())
	return exitcode.Success
}
