// Package service defines the backend-agnostic interface for Todoist reads.
package service

// Project is a named container for tasks. ParentID is empty for top-level
// projects.
type Project struct {
	ID         string
	Name       string
	ParentID   string
	IsFavorite bool
	ChildOrder int
}

// Section is a named subdivision of a single project.
type Section struct {
	ID        string
	ProjectID string
	Name      string
	Order     int
}

// Task is a to-do item. SectionID and ParentID are empty when the task has
// no section or is not a subtask; Due is nil when there is no due date.
type Task struct {
	ID        string
	Content   string
	ProjectID string
	SectionID string
	ParentID  string
	Priority  int // 1 (normal) to 4 (urgent)
	Due       *Due
}

// Due describes when a task is due.
type Due struct {
	// Date is YYYY-MM-DD, or a date-time for tasks with a time of day.
	Date        string
	String      string
	IsRecurring bool
}
