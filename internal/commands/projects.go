package commands

import (
	"context"
	"flag"
	"fmt"

	"todoist-cli/internal/exitcode"
	"todoist-cli/internal/output"
	"todoist-cli/internal/service"
)

func init() {
	Register(&ProjectsCmd{})
}

// ProjectsCmd implements the projects command.
type ProjectsCmd struct{}

func (c *ProjectsCmd) Name() string      { return "projects" }
func (c *ProjectsCmd) Aliases() []string { return nil }
func (c *ProjectsCmd) Synopsis() string  { return "List all active projects" }
func (c *ProjectsCmd) Usage() string     { return "todoist-cli projects [common flags]" }
func (c *ProjectsCmd) NeedsAuth() bool   { return true }

func (c *ProjectsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ProjectsCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string) int {
	if len(args) > 0 {
		env.Errorf("unexpected argument: %s", args[0])
		return exitcode.UserError
	}

	projects, err := svc.ListProjects(ctx)
	if err != nil {
		return backendFailure(env, "projects", err)
	}

	if len(projects) == 0 {
		fmt.Fprintln(env.Out, "No projects found.")
		return exitcode.Success
	}

	output.FormatProjects(env.Out, output.BuildProjectTree(projects))
	return exitcode.Success
}
