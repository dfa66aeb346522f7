package sync

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zeity-dev/zeity/internal/domain/project"
	"github.com/zeity-dev/zeity/internal/store"
	"github.com/zeity-dev/zeity/internal/transport"
)

// ProjectService is the dual-write orchestrator for projects. The
// routing rules mirror TimeService, with organisation linkage instead
// of member linkage as the ownership marker.
type ProjectService struct {
	store   *store.Store[project.Project]
	remote  ProjectAPI
	session Session
	logger  *slog.Logger
}

// NewProjectService creates a project orchestrator.
func NewProjectService(st *store.Store[project.Project], remote ProjectAPI, session Session, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectService{
		store:   st,
		remote:  remote,
		session: session,
		logger:  logger,
	}
}

// Store exposes the underlying entity store for read-only views.
func (s *ProjectService) Store() *store.Store[project.Project] { return s.store }

// Create records a new project, remotely when a session is active and
// locally otherwise or on remote failure.
func (s *ProjectService) Create(ctx context.Context, proj project.Project) project.Project {
	if proj.Status == "" {
		proj.Status = project.StatusActive
	}

	if s.session.LoggedIn() {
		created, err := s.remote.CreateProject(ctx, proj)
		if err == nil {
			s.store.Insert(created)
			return created
		}
		s.logger.Debug("remote create failed, keeping project local", "error", err)
	}

	if proj.ID == "" {
		proj.ID = uuid.NewString()
	}
	s.store.Insert(proj)
	return proj
}

// Update edits the project under id, routed remotely when the server
// owns it. The patch is applied locally even when the remote write
// fails; local projects are never promoted to online here.
func (s *ProjectService) Update(ctx context.Context, id string, patch project.Patch) (project.Project, bool) {
	if s.session.LoggedIn() && s.IsOnline(id) {
		updated, err := s.remote.UpdateProject(ctx, id, patch)
		if err == nil {
			s.store.Update(id, func(p *project.Project) { *p = updated })
			return updated, true
		}
		s.logger.Debug("remote update failed, applying edit locally", "id", id, "error", err)
	}

	ok := s.store.Update(id, func(p *project.Project) { patch.Apply(p) })
	if !ok {
		return project.Project{}, false
	}
	proj, _ := s.store.FindByID(id)
	return proj, true
}

// Remove deletes the project under id; the local copy always goes.
func (s *ProjectService) Remove(ctx context.Context, id string) {
	if s.session.LoggedIn() && s.IsOnline(id) {
		if err := s.remote.DeleteProject(ctx, id); err != nil {
			s.logger.Debug("remote delete failed, removing local copy anyway", "id", id, "error", err)
		}
	}
	s.store.Remove(id)
}

// Load fetches a page of projects and merges it into the store.
func (s *ProjectService) Load(ctx context.Context, opts transport.ProjectListOptions) ([]project.Project, error) {
	if !s.session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	page, err := s.remote.ListProjects(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.store.UpsertMany(page)
	return page, nil
}

// LoadOne fetches a single project and merges it into the store.
func (s *ProjectService) LoadOne(ctx context.Context, id string) (project.Project, error) {
	if !s.session.LoggedIn() {
		return project.Project{}, ErrNotLoggedIn
	}
	proj, err := s.remote.GetProject(ctx, id)
	if err != nil {
		return project.Project{}, err
	}
	s.store.UpsertMany([]project.Project{proj})
	return proj, nil
}

// IsOnline reports whether the stored project under id carries the
// organisation linkage.
func (s *ProjectService) IsOnline(id string) bool {
	proj, ok := s.store.FindByID(id)
	return ok && proj.IsOnline()
}

// OfflineProjects returns the projects that exist only on this device.
func (s *ProjectService) OfflineProjects() []project.Project {
	return s.store.Find(func(p project.Project) bool { return !p.IsOnline() })
}

// OrganisationProjects returns local-only projects plus those linked
// to the given organisation.
func (s *ProjectService) OrganisationProjects(orgID string) []project.Project {
	return s.store.Find(func(p project.Project) bool {
		return !p.IsOnline() || p.OrganisationID == orgID
	})
}
