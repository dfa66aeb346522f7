package transport

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zeity-dev/zeity/internal/domain/project"
)

// ProjectListOptions filter a project listing.
type ProjectListOptions struct {
	Offset int
	Limit  int

	Sort   string
	Search string
	Status []string
}

func (o ProjectListOptions) query() url.Values {
	q := url.Values{}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Sort != "" {
		q.Set("sort", o.Sort)
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	appendEach(q, "status[]", o.Status)
	return q
}

// ListProjects fetches a page of projects.
func (c *Client) ListProjects(ctx context.Context, opts ProjectListOptions) ([]project.Project, error) {
	var out []project.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject fetches a single project.
func (c *Client) GetProject(ctx context.Context, id string) (project.Project, error) {
	var out project.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return project.Project{}, err
	}
	return out, nil
}

// CreateProject posts a new project; the response id is authoritative.
func (c *Client) CreateProject(ctx context.Context, proj project.Project) (project.Project, error) {
	var out project.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", nil, proj, &out); err != nil {
		return project.Project{}, err
	}
	return out, nil
}

// UpdateProject patches an existing project.
func (c *Client) UpdateProject(ctx context.Context, id string, patch project.Patch) (project.Project, error) {
	var out project.Project
	if err := c.do(ctx, http.MethodPatch, "/api/projects/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return project.Project{}, err
	}
	return out, nil
}

// DeleteProject removes a project on the server.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil, nil)
}
