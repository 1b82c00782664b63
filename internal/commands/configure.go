package commands

import (
	"context"
	"errors"
	"flag"

	"todoist-cli/internal/exitcode"
	"todoist-cli/internal/service"
	"todoist-cli/internal/token"
)

func init() {
	Register(&ConfigureCmd{})
}

// ConfigureCmd implements the configure command. Without --force it keeps
// an existing token and only prompts when none is stored.
type ConfigureCmd struct {
	force bool
}

// SetForce sets the --force flag (for testing).
func (c *ConfigureCmd) SetForce(force bool) {
	c.force = force
}

func (c *ConfigureCmd) Name() string      { return "configure" }
func (c *ConfigureCmd) Aliases() []string { return nil }
func (c *ConfigureCmd) Synopsis() string  { return "Set up the Todoist API token" }
func (c *ConfigureCmd) Usage() string     { return "todoist-cli configure [common flags] [--force]" }
func (c *ConfigureCmd) NeedsAuth() bool   { return false }

func (c *ConfigureCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *ConfigureCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string) int {
	if _, stored := env.Tokens.Stored(); stored && !c.force {
		env.Infof("A token is already configured. Use --force to replace it.")
		env.Infof("Configuration complete!")
		return exitcode.Success
	}

	if _, err := env.Tokens.PromptAndSave(env.Prompter()); err != nil {
		if !errors.Is(err, token.ErrEmptyToken) {
			env.Errorf("Failed to save token: %v", err)
		}
		return exitcode.AuthError
	}

	env.Infof("Configuration complete!")
	return exitcode.Success
}
