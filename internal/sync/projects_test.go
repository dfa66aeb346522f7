package sync_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeity-dev/zeity/internal/domain/project"
	"github.com/zeity-dev/zeity/internal/mocks"
	"github.com/zeity-dev/zeity/internal/store"
	"github.com/zeity-dev/zeity/internal/sync"
	"github.com/zeity-dev/zeity/internal/transport"
)

func newProjectService(t *testing.T, loggedIn bool) (*sync.ProjectService, *mocks.ProjectAPI, *store.Store[project.Project]) {
	t.Helper()
	remote := &mocks.ProjectAPI{}
	st := store.New[project.Project]("projects", nil)
	svc := sync.NewProjectService(st, remote, mocks.Session{Authenticated: loggedIn}, nil)
	return svc, remote, st
}

func TestProjectService_CreateOnline(t *testing.T) {
	ctx := context.Background()
	svc, remote, st := newProjectService(t, true)

	serverCopy := project.Project{ID: "server-1", Name: "Website", Status: project.StatusActive, OrganisationID: "org-1"}
	remote.On("CreateProject", ctx, mock.Anything).Return(serverCopy, nil)

	created := svc.Create(ctx, project.Project{Name: "Website"})

	require.Equal(t, "server-1", created.ID)
	require.True(t, created.IsOnline())
	require.Equal(t, 1, st.Len())
}

func TestProjectService_CreateOfflineFallback(t *testing.T) {
	ctx := context.Background()
	svc, remote, st := newProjectService(t, true)

	remote.On("CreateProject", ctx, mock.Anything).Return(project.Project{}, transport.ErrUnavailable)

	created := svc.Create(ctx, project.Project{Name: "Website"})

	require.NotEmpty(t, created.ID)
	require.Equal(t, project.StatusActive, created.Status, "status defaults to active")
	require.False(t, created.IsOnline())
	_, ok := st.FindByID(created.ID)
	require.True(t, ok)
}

func TestProjectService_UpdateRouting(t *testing.T) {
	ctx := context.Background()
	svc, remote, st := newProjectService(t, true)

	online := project.Project{ID: "p1", Name: "Website", Status: project.StatusActive, OrganisationID: "org-1"}
	st.Insert(online)
	st.Insert(project.Project{ID: "p2", Name: "Side quest", Status: project.StatusActive})

	updated := online
	updated.Name = "Website v2"
	remote.On("UpdateProject", ctx, "p1", mock.Anything).Return(updated, nil)

	name := "Website v2"
	got, ok := svc.Update(ctx, "p1", project.Patch{Name: &name})
	require.True(t, ok)
	require.Equal(t, "Website v2", got.Name)

	local := "Renamed locally"
	got, ok = svc.Update(ctx, "p2", project.Patch{Name: &local})
	require.True(t, ok)
	require.Equal(t, "Renamed locally", got.Name)
	require.False(t, got.IsOnline())

	remote.AssertNumberOfCalls(t, "UpdateProject", 1)
}

func TestProjectService_RemoveRouting(t *testing.T) {
	ctx := context.Background()
	svc, remote, st := newProjectService(t, true)

	st.Insert(project.Project{ID: "p1", Name: "Website", OrganisationID: "org-1"})
	remote.On("DeleteProject", ctx, "p1").Return(nil)

	svc.Remove(ctx, "p1")
	svc.Remove(ctx, "p1") // second remove is a no-op

	require.Zero(t, st.Len())
	remote.AssertNumberOfCalls(t, "DeleteProject", 1)
}

func TestProjectService_LoadMergesAndReturnsPage(t *testing.T) {
	ctx := context.Background()
	svc, remote, st := newProjectService(t, true)

	page := []project.Project{
		{ID: "p1", Name: "Website", Status: project.StatusActive, OrganisationID: "org-1"},
		{ID: "p2", Name: "Archive", Status: project.StatusClosed, OrganisationID: "org-1"},
	}
	remote.On("ListProjects", ctx, mock.Anything).Return(page, nil)

	got, err := svc.Load(ctx, transport.ProjectListOptions{Status: []string{"active", "closed"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 2, st.Len())
}

func TestProjectService_LoadRequiresSession(t *testing.T) {
	ctx := context.Background()
	svc, remote, _ := newProjectService(t, false)

	_, err := svc.Load(ctx, transport.ProjectListOptions{})
	require.ErrorIs(t, err, sync.ErrNotLoggedIn)
	remote.AssertNotCalled(t, "ListProjects")
}

func TestProjectService_OfflineProjects(t *testing.T) {
	svc, _, st := newProjectService(t, true)

	st.Insert(project.Project{ID: "p1", Name: "Org", OrganisationID: "org-1"})
	st.Insert(project.Project{ID: "p2", Name: "Local"})

	offline := svc.OfflineProjects()
	require.Len(t, offline, 1)
	require.Equal(t, "p2", offline[0].ID)

	org := svc.OrganisationProjects("org-1")
	require.Len(t, org, 2)
}
