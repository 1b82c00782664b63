// Package service defines the backend-agnostic interface for Todoist reads.
package service

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the API rejects the token.
	ErrUnauthorized = errors.New("invalid or expired API token")

	// ErrStatus is returned for any other unexpected response status.
	ErrStatus = errors.New("unexpected response status")
)

// Service defines the read operations the CLI needs from Todoist.
// Every list is complete: implementations follow pagination themselves.
// Commands never talk HTTP directly.
type Service interface {
	// ListProjects returns all active projects in API order.
	ListProjects(ctx context.Context) ([]Project, error)

	// ListSections returns all sections of all projects in API order.
	ListSections(ctx context.Context) ([]Section, error)

	// ListTasks returns active tasks in API order, restricted to one
	// project when projectID is not empty.
	ListTasks(ctx context.Context, projectID string) ([]Task, error)

	// GetTask returns a single task, or ErrNotFound.
	GetTask(ctx context.Context, id string) (Task, error)
}
