// Package todoist implements the service.Service interface using the Todoist
// API v1 (https://developer.todoist.com/api/v1).
package todoist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"todoist-cli/internal/service"
)

const (
	// DefaultBaseURL is the Todoist API v1 root.
	DefaultBaseURL = "https://api.todoist.com/api/v1"

	// PageSize is the number of records requested per page (the API maximum).
	PageSize = 200

	// maxErrorBody bounds how much of an error response is kept for messages.
	maxErrorBody = 512
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root. Meant for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// Client implements service.Service over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
}

// New creates a client that sends token as a bearer credential on every
// request. As with oauth2.NewClient, ctx may carry the base *http.Client
// under oauth2.HTTPClient.
func New(ctx context.Context, token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("create client: empty token: %w", service.ErrUnauthorized)
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
	c := &Client{
		http:    oauth2.NewClient(ctx, src),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListProjects returns all active projects in API order.
func (c *Client) ListProjects(ctx context.Context) ([]service.Project, error) {
	raw, err := collect(c.Projects(ctx))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	result := make([]service.Project, 0, len(raw))
	for _, p := range raw {
		result = append(result, p.toService())
	}
	return result, nil
}

// ListSections returns all sections in API order.
func (c *Client) ListSections(ctx context.Context) ([]service.Section, error) {
	raw, err := collect(c.Sections(ctx, ""))
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	result := make([]service.Section, 0, len(raw))
	for _, s := range raw {
		result = append(result, s.toService())
	}
	return result, nil
}

// ListTasks returns active tasks in API order, optionally for one project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]service.Task, error) {
	raw, err := collect(c.Tasks(ctx, projectID))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	result := make([]service.Task, 0, len(raw))
	for _, t := range raw {
		result = append(result, t.toService())
	}
	return result, nil
}

// GetTask returns a single task by id.
func (c *Client) GetTask(ctx context.Context, id string) (service.Task, error) {
	var t Task
	if err := c.get(ctx, "/tasks/"+url.PathEscape(id), nil, &t); err != nil {
		return service.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return t.toService(), nil
}

// Projects returns a lazy iterator over all projects.
func (c *Client) Projects(ctx context.Context) *Iterator[Project] {
	return newIterator[Project](ctx, c, "/projects", nil)
}

// Sections returns a lazy iterator over sections, optionally for one project.
func (c *Client) Sections(ctx context.Context, projectID string) *Iterator[Section] {
	return newIterator[Section](ctx, c, "/sections", projectQuery(projectID))
}

// Tasks returns a lazy iterator over active tasks, optionally for one project.
func (c *Client) Tasks(ctx context.Context, projectID string) *Iterator[Task] {
	return newIterator[Task](ctx, c, "/tasks", projectQuery(projectID))
}

func projectQuery(projectID string) url.Values {
	if projectID == "" {
		return nil
	}
	return url.Values{"project_id": {projectID}}
}

// get performs a GET request and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, path string, query url.Values, v interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")

	logEntry := log.WithFields(log.Fields{
		"op":         "get",
		"path":       path,
		"request_id": requestID,
	})
	logEntry.WithField("query", query.Encode()).Debug("Sending request")

	r, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logEntry.WithField("cause", err).Warning("Could not close response body")
		}
	}()
	logEntry.WithField("status", r.StatusCode).Debug("Received response")

	if r.StatusCode < 200 || r.StatusCode > 299 {
		return statusError(r)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError maps a non-2xx response to one of the service sentinels.
func statusError(r *http.Response) error {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxErrorBody))
	text := strings.TrimSpace(string(b))
	if err != nil {
		text = fmt.Sprintf("unknown, because of error reading body: %v", err)
	}
	switch r.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%d: %w", r.StatusCode, service.ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%d: %w", r.StatusCode, service.ErrNotFound)
	default:
		if text == "" {
			return fmt.Errorf("%d: %w", r.StatusCode, service.ErrStatus)
		}
		return fmt.Errorf("%d %s: %w", r.StatusCode, text, service.ErrStatus)
	}
}
