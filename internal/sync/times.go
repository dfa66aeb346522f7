package sync

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zeity-dev/zeity/internal/domain/times"
	"github.com/zeity-dev/zeity/internal/store"
	"github.com/zeity-dev/zeity/internal/transport"
)

// TimeService is the dual-write orchestrator for time entries.
type TimeService struct {
	store    *store.Store[times.Time]
	remote   TimeAPI
	session  Session
	settings SettingsReader
	logger   *slog.Logger
}

// NewTimeService creates a time orchestrator over the given store and
// remote endpoint.
func NewTimeService(st *store.Store[times.Time], remote TimeAPI, session Session, settings SettingsReader, logger *slog.Logger) *TimeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimeService{
		store:    st,
		remote:   remote,
		session:  session,
		settings: settings,
		logger:   logger,
	}
}

// Store exposes the underlying entity store for read-only views.
func (s *TimeService) Store() *store.Store[times.Time] { return s.store }

// Create records a new entry. With an active session the remote
// create is attempted first and the server's copy (server id) is what
// gets stored. On remote failure or without a session the entry is
// stored locally as given, so create always succeeds, even fully
// offline.
func (s *TimeService) Create(ctx context.Context, entry times.Time) times.Time {
	if s.settings.Get().RoundTimes {
		entry = times.Round(entry)
	}

	if s.session.LoggedIn() {
		created, err := s.remote.CreateTime(ctx, entry)
		if err == nil {
			s.store.Insert(created)
			return created
		}
		s.logger.Debug("remote create failed, keeping entry local", "error", err)
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	s.store.Insert(entry)
	return entry
}

// Update edits the entry stored under id. Entries the server owns are
// routed to the remote endpoint and the response overwrites the local
// copy; local-only entries are edited in place and never promoted.
// When the remote write fails the patch is still applied locally so
// the edit is not lost. Unknown ids are a no-op.
func (s *TimeService) Update(ctx context.Context, id string, patch times.Patch) (times.Time, bool) {
	if s.settings.Get().RoundTimes && patch.Complete() {
		rounded := times.Round(times.Time{Start: *patch.Start, Duration: *patch.Duration})
		patch.Start = &rounded.Start
		patch.Duration = &rounded.Duration
	}

	if s.session.LoggedIn() && s.IsOnline(id) {
		updated, err := s.remote.UpdateTime(ctx, id, patch)
		if err == nil {
			s.store.Update(id, func(t *times.Time) { *t = updated })
			return updated, true
		}
		s.logger.Debug("remote update failed, applying edit locally", "id", id, "error", err)
	}

	ok := s.store.Update(id, func(t *times.Time) { patch.Apply(t) })
	if !ok {
		return times.Time{}, false
	}
	entry, _ := s.store.FindByID(id)
	return entry, true
}

// Remove deletes the entry under id, remotely when the server owns
// it. The local copy is removed regardless of the remote outcome; a
// remotely surviving entry is rediscovered on the next full load.
func (s *TimeService) Remove(ctx context.Context, id string) {
	if s.session.LoggedIn() && s.IsOnline(id) {
		if err := s.remote.DeleteTime(ctx, id); err != nil {
			s.logger.Debug("remote delete failed, removing local copy anyway", "id", id, "error", err)
		}
	}
	s.store.Remove(id)
}

// Load fetches a page of entries and merges it into the store. Local
// records absent from the page are never pruned; the remote listing
// cannot know about them.
func (s *TimeService) Load(ctx context.Context, opts transport.TimeListOptions) ([]times.Time, error) {
	if !s.session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	page, err := s.remote.ListTimes(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.store.UpsertMany(page)
	return page, nil
}

// LoadOne fetches a single entry and merges it into the store.
func (s *TimeService) LoadOne(ctx context.Context, id string) (times.Time, error) {
	if !s.session.LoggedIn() {
		return times.Time{}, ErrNotLoggedIn
	}
	entry, err := s.remote.GetTime(ctx, id)
	if err != nil {
		return times.Time{}, err
	}
	s.store.UpsertMany([]times.Time{entry})
	return entry, nil
}

// IsOnline reports whether the stored entry under id carries the
// server-ownership marker. A pure function of the stored record,
// never of connectivity.
func (s *TimeService) IsOnline(id string) bool {
	entry, ok := s.store.FindByID(id)
	return ok && entry.IsOnline()
}

// OfflineTimes returns the entries that exist only on this device.
func (s *TimeService) OfflineTimes() []times.Time {
	return s.store.Find(func(t times.Time) bool { return !t.IsOnline() })
}

// OrganisationTimes returns local-only entries plus those belonging
// to the given organisation member.
func (s *TimeService) OrganisationTimes(memberID string) []times.Time {
	return s.store.Find(func(t times.Time) bool {
		return !t.IsOnline() || t.OrganisationMemberID == memberID
	})
}
