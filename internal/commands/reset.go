package commands

import (
	"context"
	"flag"

	"todoist-cli/internal/exitcode"
	"todoist-cli/internal/service"
)

func init() {
	Register(&ResetCmd{})
}

// ResetCmd implements the reset command.
type ResetCmd struct {
	yes bool
}

// SetYes sets the --yes flag (for testing).
func (c *ResetCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *ResetCmd) Name() string      { return "reset" }
func (c *ResetCmd) Aliases() []string { return nil }
func (c *ResetCmd) Synopsis() string  { return "Remove the stored API token" }
func (c *ResetCmd) Usage() string     { return "todoist-cli reset [common flags] [--yes]" }
func (c *ResetCmd) NeedsAuth() bool   { return false }

func (c *ResetCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
}

func (c *ResetCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string) int {
	if !c.yes {
		ok, err := env.Prompter().Confirm("Remove the stored API token?")
		if err != nil {
			env.Errorf("Failed to read answer: %v", err)
			return exitcode.UserError
		}
		if !ok {
			env.Infof("Reset cancelled.")
			return exitcode.Success
		}
	}

	removed, err := env.Tokens.Clear()
	if err != nil {
		env.Errorf("Failed to remove token: %v", err)
		return exitcode.AuthError
	}

	if removed {
		env.Infof("Token removed successfully.")
	} else {
		env.Infof("No token configured.")
	}
	return exitcode.Success
}
