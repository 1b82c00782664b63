package commands

import (
	"context"
	"flag"
	"fmt"

	"todoist-cli/internal/config"
	"todoist-cli/internal/exitcode"
	"todoist-cli/internal/service"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command and the --version flag.
type VersionCmd struct{}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version" }
func (c *VersionCmd) Usage() string     { return "todoist-cli version" }
func (c *VersionCmd) NeedsAuth() bool   { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string) int {
	fmt.Fprintf(env.Out, "%s %s\n", config.AppName, Version)
	return exitcode.Success
}
