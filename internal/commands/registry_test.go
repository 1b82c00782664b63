package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoist-cli/internal/commands"
)

type aliasedCmd struct {
	commands.HelpCmd
	name    string
	aliases []string
}

func (c *aliasedCmd) Name() string      { return c.name }
func (c *aliasedCmd) Aliases() []string { return c.aliases }

func TestRegistry(t *testing.T) {
	r := commands.NewRegistry()
	require.NoError(t, r.Register(&aliasedCmd{name: "tasks", aliases: []string{"ls"}}))
	require.NoError(t, r.Register(&aliasedCmd{name: "projects"}))

	cmd, ok := r.Find("ls")
	require.True(t, ok)
	assert.Equal(t, "tasks", cmd.Name())

	_, ok = r.Find("missing")
	assert.False(t, ok)

	var names []string
	for _, c := range r.All() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"projects", "tasks"}, names)
}

func TestRegistry_Duplicates(t *testing.T) {
	r := commands.NewRegistry()
	require.NoError(t, r.Register(&aliasedCmd{name: "tasks", aliases: []string{"ls"}}))

	assert.Error(t, r.Register(&aliasedCmd{name: "tasks"}))
	assert.Error(t, r.Register(&aliasedCmd{name: "list", aliases: []string{"ls"}}))

	_, ok := r.Find("list")
	assert.False(t, ok, "a rejected command is not partially registered")
}

func TestDefaultRegistry(t *testing.T) {
	for _, name := range []string{"status", "configure", "reset", "projects", "tasks", "help", "version"} {
		_, ok := commands.DefaultRegistry.Find(name)
		assert.True(t, ok, "command %s registered", name)
	}
}
