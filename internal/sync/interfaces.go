// Package sync decides, per write, whether a record goes to the
// remote API, the local store, or both, and reconciles server and
// client identity. Remote failures are expected conditions here, not
// exceptions: every fallback keeps the user's data locally.
package sync

import (
	"context"
	"errors"

	"github.com/zeity-dev/zeity/internal/domain/project"
	"github.com/zeity-dev/zeity/internal/domain/times"
	"github.com/zeity-dev/zeity/internal/settings"
	"github.com/zeity-dev/zeity/internal/transport"
)

// ErrNotLoggedIn is returned by Load when there is no active session;
// loading is a purely remote operation.
var ErrNotLoggedIn = errors.New("not logged in")

// Session answers whether the caller currently has an active
// authenticated session. Consulted once at the start of each create.
type Session interface {
	LoggedIn() bool
}

// SettingsReader exposes the current user preferences.
type SettingsReader interface {
	Get() settings.Settings
}

// TimeAPI is the remote CRUD endpoint for time entries.
type TimeAPI interface {
	ListTimes(ctx context.Context, opts transport.TimeListOptions) ([]times.Time, error)
	GetTime(ctx context.Context, id string) (times.Time, error)
	CreateTime(ctx context.Context, entry times.Time) (times.Time, error)
	UpdateTime(ctx context.Context, id string, patch times.Patch) (times.Time, error)
	DeleteTime(ctx context.Context, id string) error
}

// ProjectAPI is the remote CRUD endpoint for projects.
type ProjectAPI interface {
	ListProjects(ctx context.Context, opts transport.ProjectListOptions) ([]project.Project, error)
	GetProject(ctx context.Context, id string) (project.Project, error)
	CreateProject(ctx context.Context, proj project.Project) (project.Project, error)
	UpdateProject(ctx context.Context, id string, patch project.Patch) (project.Project, error)
	DeleteProject(ctx context.Context, id string) error
}
