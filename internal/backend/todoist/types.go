package todoist

import "todoist-cli/internal/service"

// page is the envelope of every paginated list response.
type page[T any] struct {
	Results    []T     `json:"results"`
	NextCursor *string `json:"next_cursor"`
}

// Project partially describes a project as returned by the API. It only
// includes the fields the CLI needs.
type Project struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	ParentID   *string `json:"parent_id"`
	IsFavorite bool    `json:"is_favorite"`
	ChildOrder int     `json:"child_order"`
	IsArchived bool    `json:"is_archived"`
	IsDeleted  bool    `json:"is_deleted"`
}

func (p Project) toService() service.Project {
	return service.Project{
		ID:         p.ID,
		Name:       p.Name,
		ParentID:   deref(p.ParentID),
		IsFavorite: p.IsFavorite,
		ChildOrder: p.ChildOrder,
	}
}

// Section partially describes a section.
type Section struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id"`
	Name         string `json:"name"`
	SectionOrder int    `json:"section_order"`
}

func (s Section) toService() service.Section {
	return service.Section{
		ID:        s.ID,
		ProjectID: s.ProjectID,
		Name:      s.Name,
		Order:     s.SectionOrder,
	}
}

// Task partially describes an active task.
type Task struct {
	ID         string  `json:"id"`
	Content    string  `json:"content"`
	ProjectID  string  `json:"project_id"`
	SectionID  *string `json:"section_id"`
	ParentID   *string `json:"parent_id"`
	Priority   int     `json:"priority"`
	ChildOrder int     `json:"child_order"`
	Due        *Due    `json:"due"`
}

// Due is the due date object attached to a task.
type Due struct {
	// YYYY-MM-DD, or YYYY-MM-DDTHH:MM:SS for tasks with a time of day.
	Date string `json:"date"`

	// Human-readable representation in the user's language, e.g. "every monday".
	String string `json:"string"`

	IsRecurring bool   `json:"is_recurring"`
	Timezone    string `json:"timezone"`
	Lang        string `json:"lang"`
}

func (t Task) toService() service.Task {
	task := service.Task{
		ID:        t.ID,
		Content:   t.Content,
		ProjectID: t.ProjectID,
		SectionID: deref(t.SectionID),
		ParentID:  deref(t.ParentID),
		Priority:  t.Priority,
	}
	if t.Due != nil && t.Due.Date != "" {
		task.Due = &service.Due{
			Date:        t.Due.Date,
			String:      t.Due.String,
			IsRecurring: t.Due.IsRecurring,
		}
	}
	return task
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
