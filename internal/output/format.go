// Package output groups Todoist records into trees and formats them for the
// terminal.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"todoist-cli/internal/service"
)

const (
	// ProjectSeparator underlines the project list heading.
	ProjectSeparator = "----------------------------------------"

	// TaskSeparator underlines the task list heading.
	TaskSeparator = "=================================================="

	favoriteMarker = "★"
)

// FormatProjects prints the project tree:
//
//	Active Projects:
//	----------------------------------------
//	• Work (★)
//	  ├─ Eng
func FormatProjects(w io.Writer, nodes []ProjectNode) {
	fmt.Fprintln(w, "Active Projects:")
	fmt.Fprintln(w, ProjectSeparator)
	for _, node := range nodes {
		fmt.Fprintf(w, "• %s%s\n", normalizeTitle(node.Project.Name), projectInfo(node.Project))
		for _, child := range node.Children {
			fmt.Fprintf(w, "  ├─ %s%s\n", normalizeTitle(child.Name), projectInfo(child))
		}
	}
}

// TaskView describes one rendering of the task tree.
type TaskView struct {
	// Title is the heading, e.g. "All Tasks" or a project name.
	Title string

	// SingleProject hides project headings, and the "No Section" heading
	// when it is the only section.
	SingleProject bool

	Groups []ProjectGroup
}

// FormatTasks prints the task tree, ending with a blank line.
func FormatTasks(w io.Writer, view TaskView) {
	fmt.Fprintf(w, "📋 %s\n", normalizeTitle(view.Title))
	fmt.Fprintln(w, TaskSeparator)

	for _, group := range view.Groups {
		if !view.SingleProject {
			fmt.Fprintf(w, "\n🏢 %s\n", group.Name)
			fmt.Fprintln(w, rule(group.Name, 4))
		}
		for _, section := range group.Sections {
			if showSectionHeading(view, group, section) {
				fmt.Fprintf(w, "\n📂 %s\n", section.Name)
				fmt.Fprintln(w, "   "+rule(section.Name, 2))
			}
			for _, node := range section.Tasks {
				fmt.Fprintf(w, "   • %s%s\n", normalizeTitle(node.Task.Content), TaskInfo(node.Task))
				for _, sub := range node.Subtasks {
					fmt.Fprintf(w, "     ├─ %s%s\n", normalizeTitle(sub.Content), TaskInfo(sub))
				}
			}
		}
	}
	fmt.Fprintln(w)
}

func showSectionHeading(view TaskView, group ProjectGroup, section SectionGroup) bool {
	if section.Name != NoSection {
		return true
	}
	return !view.SingleProject || len(group.Sections) > 1
}

// TaskInfo returns the annotation suffix of a task line, e.g.
// " (p3, due: 2024-05-01)", or "" when there is nothing to annotate.
func TaskInfo(t service.Task) string {
	var info []string
	if t.Priority > 1 {
		info = append(info, "p"+strconv.Itoa(t.Priority))
	}
	if t.Due != nil {
		info = append(info, "due: "+t.Due.Date)
	}
	return annotate(info)
}

func projectInfo(p service.Project) string {
	var info []string
	if p.IsFavorite {
		info = append(info, favoriteMarker)
	}
	return annotate(info)
}

func annotate(info []string) string {
	if len(info) == 0 {
		return ""
	}
	return " (" + strings.Join(info, ", ") + ")"
}

// rule returns a line of box-drawing characters as wide as s plus pad.
func rule(s string, pad int) string {
	return strings.Repeat("─", utf8.RuneCountInString(s)+pad)
}

// normalizeTitle normalizes a task or project title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
