package commands

import (
	"context"
	"flag"
	"fmt"

	"todoist-cli/internal/exitcode"
	"todoist-cli/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todoist-cli help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string) int {
	fmt.Fprintln(env.Out, "Todoist CLI: view your Todoist projects and tasks.")
	fmt.Fprintln(env.Out)
	fmt.Fprintln(env.Out, "Usage:")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(env.Out, "  %s\n      %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(env.Out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Global options:
  -h, --help       Show this message
  --version        Print the version
`
