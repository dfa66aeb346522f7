package project_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeity-dev/zeity/internal/domain/project"
)

func TestProject_IsOnline(t *testing.T) {
	require.False(t, project.Project{ID: "p1"}.IsOnline())
	require.True(t, project.Project{ID: "p1", OrganisationID: "org-1"}.IsOnline())
}

func TestPatch_Apply(t *testing.T) {
	proj := project.Project{
		ID:     "p1",
		Name:   "Website",
		Status: project.StatusActive,
		Notes:  "initial",
	}

	name := "Website relaunch"
	status := project.StatusClosed
	project.Patch{Name: &name, Status: &status}.Apply(&proj)

	require.Equal(t, "p1", proj.ID)
	require.Equal(t, "Website relaunch", proj.Name)
	require.Equal(t, project.StatusClosed, proj.Status)
	require.Equal(t, "initial", proj.Notes, "unset fields stay untouched")
}

func TestPatch_EmptyIsNoop(t *testing.T) {
	proj := project.Project{ID: "p1", Name: "Website", Status: project.StatusActive}
	project.Patch{}.Apply(&proj)
	require.Equal(t, project.Project{ID: "p1", Name: "Website", Status: project.StatusActive}, proj)
}
