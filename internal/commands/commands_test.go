package commands_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoist-cli/internal/commands"
	"todoist-cli/internal/config"
	"todoist-cli/internal/exitcode"
	"todoist-cli/internal/output"
	"todoist-cli/internal/service"
	"todoist-cli/internal/testutil"
)

// newEnv builds an Env over a fresh config directory. stdin feeds prompts.
func newEnv(t *testing.T, stdin string, quiet bool) (*commands.Env, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}
	return commands.NewEnv(cfg, strings.NewReader(stdin), &outBuf, &errBuf), &outBuf, &errBuf
}

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string) (stdout, stderr string, code int) {
	t.Helper()

	env, outBuf, errBuf := newEnv(t, "", false)
	code = cmd.Run(context.Background(), env, svc, args)
	return outBuf.String(), errBuf.String(), code
}

func sampleService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddProject("1", "Work", "", true)
	svc.AddProject("2", "Home", "", false)
	svc.AddProject("3", "Eng", "1", false)
	svc.AddSection("s1", "1", "Later")
	svc.AddTask(service.Task{ID: "10", Content: "A", ProjectID: "1", Priority: 1})
	svc.AddTask(service.Task{ID: "11", Content: "B", ProjectID: "1", ParentID: "10", Priority: 3})
	svc.AddTask(service.Task{ID: "12", Content: "C", ProjectID: "1", SectionID: "s1", Priority: 1,
		Due: &service.Due{Date: "2024-05-01"}})
	svc.AddTask(service.Task{ID: "20", Content: "D", ProjectID: "2", Priority: 1})
	return svc
}

func projectHeading(name string) string {
	return "\n🏢 " + name + "\n" + strings.Repeat("─", len([]rune(name))+4) + "\n"
}

func sectionHeading(name string) string {
	return "\n📂 " + name + "\n   " + strings.Repeat("─", len([]rune(name))+2) + "\n"
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "todoist-cli 0.1.0\n", stdout)
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Usage:")
	for _, want := range []string{"configure", "reset", "projects", "--project-name", "--task-id", "status", "--config <dir>"} {
		assert.Contains(t, stdout, want)
	}
}

func TestProjectsCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ProjectsCmd{}, sampleService(), nil)

	assert.Equal(t, exitcode.Success, code)
	expected := "Active Projects:\n" + output.ProjectSeparator + "\n" +
		"• Work (★)\n" +
		"  ├─ Eng\n" +
		"• Home\n"
	assert.Equal(t, expected, stdout)
}

func TestProjectsCommand_Empty(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ProjectsCmd{}, testutil.NewFakeService(), nil)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "No projects found.\n", stdout)
}

func TestProjectsCommand_UnexpectedArgument(t *testing.T) {
	svc := testutil.NewFakeService()
	stdout, _, code := runCommand(t, &commands.ProjectsCmd{}, svc, []string{"extra"})

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "Error: unexpected argument: extra\n", stdout)
	assert.Zero(t, svc.Calls["ListProjects"])
}

func TestProjectsCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListProjectsErr = errors.New("connection refused")

	stdout, _, code := runCommand(t, &commands.ProjectsCmd{}, svc, nil)

	assert.Equal(t, exitcode.BackendError, code)
	assert.Equal(t, "Error: Failed to fetch projects: connection refused\n", stdout)
}

func TestProjectsCommand_Unauthorized(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListProjectsErr = fmt.Errorf("list projects: %w", service.ErrUnauthorized)

	stdout, _, code := runCommand(t, &commands.ProjectsCmd{}, svc, nil)

	assert.Equal(t, exitcode.AuthError, code)
	assert.Contains(t, stdout, "Error: Failed to fetch projects: list projects: invalid or expired API token\n")
	assert.Contains(t, stdout, "todoist-cli configure --force")
}

func TestTasksCommand_All(t *testing.T) {
	svc := sampleService()
	stdout, _, code := runCommand(t, &commands.TasksCmd{}, svc, nil)

	require.Equal(t, exitcode.Success, code)
	expected := "📋 All Tasks\n" + output.TaskSeparator + "\n" +
		projectHeading("Work") +
		sectionHeading("No Section") +
		"   • A\n" +
		"     ├─ B (p3)\n" +
		sectionHeading("Later") +
		"   • C (due: 2024-05-01)\n" +
		projectHeading("Home") +
		sectionHeading("No Section") +
		"   • D\n" +
		"\n"
	assert.Equal(t, expected, stdout)
	assert.Equal(t, []string{""}, svc.TaskFilters, "all tasks are fetched unfiltered")
}

func TestTasksCommand_ProjectName(t *testing.T) {
	svc := sampleService()
	cmd := &commands.TasksCmd{}
	cmd.SetFilters("  work ", "")

	stdout, _, code := runCommand(t, cmd, svc, nil)

	require.Equal(t, exitcode.Success, code)
	expected := "📋 Work\n" + output.TaskSeparator + "\n" +
		sectionHeading("No Section") +
		"   • A\n" +
		"     ├─ B (p3)\n" +
		sectionHeading("Later") +
		"   • C (due: 2024-05-01)\n" +
		"\n"
	assert.Equal(t, expected, stdout)
	assert.Equal(t, []string{"1"}, svc.TaskFilters)
}

func TestTasksCommand_SingleProjectSingleSection(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddProject("1", "Work", "", false)
	svc.AddTask(service.Task{ID: "10", Content: "A", ProjectID: "1", Priority: 1})
	svc.AddTask(service.Task{ID: "11", Content: "B", ProjectID: "1", ParentID: "10", Priority: 3})

	cmd := &commands.TasksCmd{}
	cmd.SetFilters("Work", "")
	stdout, _, code := runCommand(t, cmd, svc, nil)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "📋 Work\n"+output.TaskSeparator+"\n   • A\n     ├─ B (p3)\n\n", stdout)
}

func TestTasksCommand_ProjectNotFound(t *testing.T) {
	svc := sampleService()
	cmd := &commands.TasksCmd{}
	cmd.SetFilters("Nope", "")

	stdout, _, code := runCommand(t, cmd, svc, nil)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "Error: Project 'Nope' not found.\n", stdout)
	assert.Zero(t, svc.Calls["ListTasks"], "tasks must not be fetched for an unknown project")
}

func TestTasksCommand_NoTasks(t *testing.T) {
	tests := []struct {
		name        string
		projectName string
		expected    string
	}{
		{"all", "", "No tasks found.\n"},
		{"project", "home", "No tasks found in project 'Home'.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			svc.AddProject("2", "Home", "", false)

			cmd := &commands.TasksCmd{}
			cmd.SetFilters(tt.projectName, "")
			stdout, _, code := runCommand(t, cmd, svc, nil)

			assert.Equal(t, exitcode.Success, code)
			assert.Equal(t, tt.expected, stdout)
		})
	}
}

func TestTasksCommand_TaskID(t *testing.T) {
	svc := sampleService()
	svc.AddTask(service.Task{ID: "13", Content: "E", ProjectID: "1", ParentID: "11", Priority: 1})

	cmd := &commands.TasksCmd{}
	cmd.SetFilters("", "10")
	stdout, _, code := runCommand(t, cmd, svc, nil)

	require.Equal(t, exitcode.Success, code)
	expected := "📋 Work\n" + output.TaskSeparator + "\n" +
		"   • A\n" +
		"     ├─ B (p3)\n" +
		"     ├─ E\n" +
		"\n"
	assert.Equal(t, expected, stdout)
	assert.Equal(t, []string{"1"}, svc.TaskFilters)
}

func TestTasksCommand_TaskIDOfSubtask(t *testing.T) {
	cmd := &commands.TasksCmd{}
	cmd.SetFilters("", "11")
	stdout, _, code := runCommand(t, cmd, sampleService(), nil)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "📋 Work\n"+output.TaskSeparator+"\n   • B (p3)\n\n", stdout)
}

func TestTasksCommand_TaskNotFound(t *testing.T) {
	svc := sampleService()
	cmd := &commands.TasksCmd{}
	cmd.SetFilters("", "99")

	stdout, _, code := runCommand(t, cmd, svc, nil)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "Error: Task '99' not found.\n", stdout)
	assert.Zero(t, svc.Calls["ListTasks"])
}

func TestTasksCommand_ConflictingFilters(t *testing.T) {
	svc := sampleService()
	cmd := &commands.TasksCmd{}
	cmd.SetFilters("Work", "10")

	assert.ErrorIs(t, cmd.Validate(nil), commands.ErrConflictingFilters)

	stdout, _, code := runCommand(t, cmd, svc, nil)
	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stdout, "mutually exclusive")
	assert.Zero(t, svc.Calls["ListProjects"])
}

func TestTasksCommand_BackendErrors(t *testing.T) {
	tests := []struct {
		name   string
		inject func(*testutil.FakeService)
	}{
		{"projects", func(s *testutil.FakeService) { s.ListProjectsErr = errors.New("boom") }},
		{"sections", func(s *testutil.FakeService) { s.ListSectionsErr = errors.New("boom") }},
		{"tasks", func(s *testutil.FakeService) { s.ListTasksErr = errors.New("boom") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := sampleService()
			tt.inject(svc)

			stdout, _, code := runCommand(t, &commands.TasksCmd{}, svc, nil)

			assert.Equal(t, exitcode.BackendError, code)
			assert.Equal(t, "Error: Failed to fetch tasks: boom\n", stdout)
		})
	}
}

func TestStatusCommand(t *testing.T) {
	env, out, _ := newEnv(t, "", false)
	require.NoError(t, env.Tokens.Save("0123456789abcdef"))

	code := (&commands.StatusCmd{}).Run(context.Background(), env, nil, nil)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Todoist CLI v0.1.0\nToken: 01234567...cdef\nToken file: "+env.Tokens.Path()+"\n", out.String())
	assert.NotContains(t, out.String(), "89ab")
}

func TestStatusCommand_NoToken(t *testing.T) {
	env, out, _ := newEnv(t, "", false)

	code := (&commands.StatusCmd{}).Run(context.Background(), env, nil, nil)

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, out.String(), "No token configured. Run 'todoist-cli configure' to set one.\n")
}
