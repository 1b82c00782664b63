// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"todoist-cli/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	projects []service.Project
	sections []service.Section
	tasks    []service.Task

	// Error injection for testing
	ListProjectsErr error
	ListSectionsErr error
	ListTasksErr    error
	GetTaskErr      error

	// Calls counts invocations per method name, e.g. Calls["ListTasks"].
	Calls map[string]int

	// TaskFilters records the projectID argument of every ListTasks call.
	TaskFilters []string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{Calls: make(map[string]int)}
}

// AddProject adds a project. An empty parentID makes it top-level.
func (f *FakeService) AddProject(id, name, parentID string, favorite bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = append(f.projects, service.Project{
		ID:         id,
		Name:       name,
		ParentID:   parentID,
		IsFavorite: favorite,
	})
}

// AddSection adds a section to a project.
func (f *FakeService) AddSection(id, projectID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sections = append(f.sections, service.Section{ID: id, ProjectID: projectID, Name: name})
}

// AddTask adds a task as is.
func (f *FakeService) AddTask(task service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Calls == nil {
		f.Calls = make(map[string]int)
	}
	f.Calls[method]++
}

// ListProjects implements service.Service.
func (f *FakeService) ListProjects(ctx context.Context) ([]service.Project, error) {
	f.record("ListProjects")
	if f.ListProjectsErr != nil {
		return nil, f.ListProjectsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Project, len(f.projects))
	copy(result, f.projects)
	return result, nil
}

// ListSections implements service.Service.
func (f *FakeService) ListSections(ctx context.Context) ([]service.Section, error) {
	f.record("ListSections")
	if f.ListSectionsErr != nil {
		return nil, f.ListSectionsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Section, len(f.sections))
	copy(result, f.sections)
	return result, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, projectID string) ([]service.Task, error) {
	f.record("ListTasks")
	f.mu.Lock()
	f.TaskFilters = append(f.TaskFilters, projectID)
	f.mu.Unlock()
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []service.Task
	for _, t := range f.tasks {
		if projectID == "" || t.ProjectID == projectID {
			result = append(result, t)
		}
	}
	return result, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (service.Task, error) {
	f.record("GetTask")
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, service.ErrNotFound
}
