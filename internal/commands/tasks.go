package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"todoist-cli/internal/exitcode"
	"todoist-cli/internal/output"
	"todoist-cli/internal/service"
)

// ErrConflictingFilters is returned when both --project-name and --task-id are given.
var ErrConflictingFilters = errors.New("--project-name and --task-id are mutually exclusive")

func init() {
	Register(&TasksCmd{})
}

// TasksCmd implements the tasks command.
// Handles `tasks`, `tasks --project-name <name>` and `tasks --task-id <id>`.
type TasksCmd struct {
	projectName string
	taskID      string
}

// SetFilters sets the --project-name and --task-id flags (for testing).
func (c *TasksCmd) SetFilters(projectName, taskID string) {
	c.projectName = projectName
	c.taskID = taskID
}

func (c *TasksCmd) Name() string      { return "tasks" }
func (c *TasksCmd) Aliases() []string { return nil }
func (c *TasksCmd) Synopsis() string  { return "List tasks grouped by project and section" }
func (c *TasksCmd) Usage() string {
	return "todoist-cli tasks [common flags] [--project-name <name> | --task-id <id>]"
}
func (c *TasksCmd) NeedsAuth() bool { return true }

func (c *TasksCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.projectName, "project-name", "", "")
	fs.StringVar(&c.taskID, "task-id", "", "")
}

// Validate rejects positional arguments and conflicting filters.
func (c *TasksCmd) Validate(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	if strings.TrimSpace(c.projectName) != "" && strings.TrimSpace(c.taskID) != "" {
		return ErrConflictingFilters
	}
	return nil
}

func (c *TasksCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string) int {
	if err := c.Validate(args); err != nil {
		env.Errorf("%v", err)
		return exitcode.UserError
	}

	projects, err := svc.ListProjects(ctx)
	if err != nil {
		return backendFailure(env, "tasks", err)
	}

	if id := strings.TrimSpace(c.taskID); id != "" {
		return c.showTask(ctx, env, svc, projects, id)
	}

	// Resolve the project filter before fetching any task.
	var projectID string
	title := "All Tasks"
	if name := strings.TrimSpace(c.projectName); name != "" {
		project, ok := findProject(projects, name)
		if !ok {
			env.Errorf("Project '%s' not found.", name)
			return exitcode.UserError
		}
		projectID, title = project.ID, project.Name
	}

	sections, err := svc.ListSections(ctx)
	if err != nil {
		return backendFailure(env, "tasks", err)
	}

	tasks, err := svc.ListTasks(ctx, projectID)
	if err != nil {
		return backendFailure(env, "tasks", err)
	}

	if len(tasks) == 0 {
		if projectID != "" {
			fmt.Fprintf(env.Out, "No tasks found in project '%s'.\n", title)
		} else {
			fmt.Fprintln(env.Out, "No tasks found.")
		}
		return exitcode.Success
	}

	output.FormatTasks(env.Out, output.TaskView{
		Title:         title,
		SingleProject: projectID != "",
		Groups:        output.GroupTasks(tasks, output.ProjectNames(projects), output.SectionNames(sections)),
	})
	return exitcode.Success
}

// showTask prints a single task and its subtasks under the task's project.
func (c *TasksCmd) showTask(ctx context.Context, env *Env, svc service.Service, projects []service.Project, id string) int {
	task, err := svc.GetTask(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		env.Errorf("Task '%s' not found.", id)
		return exitcode.UserError
	}
	if err != nil {
		return backendFailure(env, "task", err)
	}

	sections, err := svc.ListSections(ctx)
	if err != nil {
		return backendFailure(env, "task", err)
	}

	siblings, err := svc.ListTasks(ctx, task.ProjectID)
	if err != nil {
		return backendFailure(env, "task", err)
	}

	// The task is displayed as top-level even when it is itself a subtask.
	task.ParentID = ""
	tree := append([]service.Task{task}, output.Descendants(siblings, task.ID)...)

	projectNames := output.ProjectNames(projects)
	title, ok := projectNames[task.ProjectID]
	if !ok {
		title = output.UnknownProject
	}
	output.FormatTasks(env.Out, output.TaskView{
		Title:         title,
		SingleProject: true,
		Groups:        output.GroupTasks(tree, projectNames, output.SectionNames(sections)),
	})
	return exitcode.Success
}

// findProject matches a project name case-insensitively, ignoring
// surrounding whitespace. The first match in API order wins.
func findProject(projects []service.Project, name string) (service.Project, bool) {
	for _, p := range projects {
		if strings.EqualFold(strings.TrimSpace(p.Name), name) {
			return p, true
		}
	}
	return service.Project{}, false
}
