// Package mocks provides hand-written testify mocks for the engine's
// collaborator interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zeity-dev/zeity/internal/domain/project"
	"github.com/zeity-dev/zeity/internal/domain/times"
	"github.com/zeity-dev/zeity/internal/settings"
	"github.com/zeity-dev/zeity/internal/transport"
)

// TimeAPI is a mock for sync.TimeAPI.
type TimeAPI struct {
	mock.Mock
}

func (m *TimeAPI) ListTimes(ctx context.Context, opts transport.TimeListOptions) ([]times.Time, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]times.Time); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeAPI) GetTime(ctx context.Context, id string) (times.Time, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(times.Time), args.Error(1)
}

func (m *TimeAPI) CreateTime(ctx context.Context, entry times.Time) (times.Time, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(times.Time), args.Error(1)
}

func (m *TimeAPI) UpdateTime(ctx context.Context, id string, patch times.Patch) (times.Time, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(times.Time), args.Error(1)
}

func (m *TimeAPI) DeleteTime(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ProjectAPI is a mock for sync.ProjectAPI.
type ProjectAPI struct {
	mock.Mock
}

func (m *ProjectAPI) ListProjects(ctx context.Context, opts transport.ProjectListOptions) ([]project.Project, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectAPI) GetProject(ctx context.Context, id string) (project.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(project.Project), args.Error(1)
}

func (m *ProjectAPI) CreateProject(ctx context.Context, proj project.Project) (project.Project, error) {
	args := m.Called(ctx, proj)
	return args.Get(0).(project.Project), args.Error(1)
}

func (m *ProjectAPI) UpdateProject(ctx context.Context, id string, patch project.Patch) (project.Project, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(project.Project), args.Error(1)
}

func (m *ProjectAPI) DeleteProject(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// KV is a mock for storage.KV.
type KV struct {
	mock.Mock
}

func (m *KV) GetItem(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if raw, ok := args.Get(0).([]byte); ok {
		return raw, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *KV) SetItem(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *KV) RemoveItem(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Session is a static sync.Session predicate.
type Session struct {
	Authenticated bool
}

func (s Session) LoggedIn() bool { return s.Authenticated }

// SettingsReader is a static sync.SettingsReader.
type SettingsReader struct {
	Settings settings.Settings
}

func (s SettingsReader) Get() settings.Settings { return s.Settings }
