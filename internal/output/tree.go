package output

import "todoist-cli/internal/service"

const (
	// UnknownProject labels tasks whose project id matches no known project.
	UnknownProject = "Unknown Project"

	// NoSection labels tasks without a (known) section.
	NoSection = "No Section"
)

// ProjectNode is a top-level project and the projects nested under it.
type ProjectNode struct {
	Project  service.Project
	Children []service.Project
}

// BuildProjectTree arranges projects for display: top-level projects in the
// order received, each with its descendants in the order received. Only one
// level of nesting is displayed, so a descendant is attached to its
// top-level ancestor. A project whose ancestry reaches an unknown id is
// dropped.
func BuildProjectTree(projects []service.Project) []ProjectNode {
	byID := make(map[string]service.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	var roots []string
	children := make(map[string][]service.Project)
	for _, p := range projects {
		if p.ParentID == "" {
			roots = append(roots, p.ID)
			continue
		}
		if root, ok := projectRoot(p, byID); ok {
			children[root] = append(children[root], p)
		}
	}

	nodes := make([]ProjectNode, 0, len(roots))
	for _, id := range roots {
		nodes = append(nodes, ProjectNode{Project: byID[id], Children: children[id]})
	}
	return nodes
}

// projectRoot follows parent ids up to a top-level project. It fails on an
// unknown id or a cycle.
func projectRoot(p service.Project, byID map[string]service.Project) (string, bool) {
	for steps := 0; steps <= len(byID); steps++ {
		parent, ok := byID[p.ParentID]
		if !ok {
			return "", false
		}
		if parent.ParentID == "" {
			return parent.ID, true
		}
		p = parent
	}
	return "", false
}

// TaskNode is a top-level task and the subtasks displayed under it.
type TaskNode struct {
	Task     service.Task
	Subtasks []service.Task
}

// SectionGroup holds the top-level tasks of one section of one project.
type SectionGroup struct {
	Name  string
	Tasks []TaskNode
}

// ProjectGroup holds the section groups of one project.
type ProjectGroup struct {
	Name     string
	Sections []SectionGroup
}

// GroupTasks arranges tasks by project name, then section name, in the
// order each project and section is first seen.
//
// A task is top-level when it has no parent or its parent is not among
// tasks (e.g. the parent is completed or outside the filter). Any other
// task is displayed as a subtask of its top-level ancestor, so deeper
// nesting is flattened to one level.
func GroupTasks(tasks []service.Task, projectNames, sectionNames map[string]string) []ProjectGroup {
	byID := make(map[string]service.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	subtasks := make(map[string][]service.Task)
	var topLevel []service.Task
	for _, t := range tasks {
		root, ok := taskRoot(t, byID)
		switch {
		case !ok:
			topLevel = append(topLevel, t)
		case root != t.ID:
			subtasks[root] = append(subtasks[root], t)
		}
	}

	var groups []ProjectGroup
	projectIndex := make(map[string]int)
	sectionIndex := make(map[string]map[string]int)
	for _, t := range topLevel {
		projectName := lookup(projectNames, t.ProjectID, UnknownProject)
		sectionName := lookup(sectionNames, t.SectionID, NoSection)

		pi, ok := projectIndex[projectName]
		if !ok {
			pi = len(groups)
			projectIndex[projectName] = pi
			sectionIndex[projectName] = make(map[string]int)
			groups = append(groups, ProjectGroup{Name: projectName})
		}
		group := &groups[pi]

		si, ok := sectionIndex[projectName][sectionName]
		if !ok {
			si = len(group.Sections)
			sectionIndex[projectName][sectionName] = si
			group.Sections = append(group.Sections, SectionGroup{Name: sectionName})
		}
		section := &group.Sections[si]
		section.Tasks = append(section.Tasks, TaskNode{Task: t, Subtasks: subtasks[t.ID]})
	}
	return groups
}

// taskRoot returns the id of t's top-level ancestor among byID. ok is false
// when t itself is top-level. A parent cycle makes t top-level too.
func taskRoot(t service.Task, byID map[string]service.Task) (root string, ok bool) {
	if _, found := byID[t.ParentID]; t.ParentID == "" || !found {
		return "", false
	}
	cur := t
	for steps := 0; steps <= len(byID); steps++ {
		parent, found := byID[cur.ParentID]
		if cur.ParentID == "" || !found {
			return cur.ID, true
		}
		if parent.ID == t.ID {
			return "", false
		}
		cur = parent
	}
	return "", false
}

// Descendants returns every task below the task with the given id, in
// the order received.
func Descendants(tasks []service.Task, id string) []service.Task {
	children := make(map[string][]service.Task)
	for _, t := range tasks {
		if t.ParentID != "" {
			children[t.ParentID] = append(children[t.ParentID], t)
		}
	}

	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range children[cur] {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			queue = append(queue, c.ID)
		}
	}

	var result []service.Task
	for _, t := range tasks {
		if t.ID != id && seen[t.ID] {
			result = append(result, t)
		}
	}
	return result
}

func lookup(names map[string]string, id, fallback string) string {
	if id == "" {
		return fallback
	}
	if name, ok := names[id]; ok {
		return name
	}
	return fallback
}

// ProjectNames indexes project names by id.
func ProjectNames(projects []service.Project) map[string]string {
	m := make(map[string]string, len(projects))
	for _, p := range projects {
		m[p.ID] = p.Name
	}
	return m
}

// SectionNames indexes section names by id.
func SectionNames(sections []service.Section) map[string]string {
	m := make(map[string]string, len(sections))
	for _, s := range sections {
		m[s.ID] = s.Name
	}
	return m
}
