// Package timer implements the single-slot draft timer: at most one
// in-flight time entry per device, persisted across restarts, and
// finalized through the sync orchestrator on stop.
package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/zeity-dev/zeity/internal/domain/times"
	"github.com/zeity-dev/zeity/internal/storage"
)

// Recorder finalizes a stopped draft into a persisted time entry.
// Satisfied by sync.TimeService.
type Recorder interface {
	Create(ctx context.Context, entry times.Time) times.Time
}

// Timer owns the draft slot. All transitions go through Start,
// Update, Stop, Toggle and Reset; the draft is never aliased out.
type Timer struct {
	recorder Recorder
	kv       storage.KV
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	draft *times.Draft
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces the timer's clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// New creates a timer and restores a persisted draft, if any, so a
// running timer survives a process restart.
func New(ctx context.Context, recorder Recorder, kv storage.KV, logger *slog.Logger, opts ...Option) *Timer {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Timer{
		recorder: recorder,
		kv:       kv,
		logger:   logger,
		now:      times.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	if draft, ok := storage.Load[times.Draft](ctx, kv, storage.KeyDraft, logger); ok {
		t.draft = &draft
	}
	return t
}

// Running reports whether a draft is in flight.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft != nil
}

// Draft returns a copy of the current draft.
func (t *Timer) Draft() (times.Draft, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.draft == nil {
		return times.Draft{}, false
	}
	return *t.draft, true
}

// Start begins a new draft with the clock's current instant, manual
// type and empty notes; patch fields override the defaults. Starting
// while already running is a no-op returning the running draft.
func (t *Timer) Start(patch times.DraftPatch) times.Draft {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.draft != nil {
		return *t.draft
	}

	draft := times.Draft{
		Type:  times.TypeManual,
		Start: t.now(),
	}
	patch.Apply(&draft)
	t.draft = &draft

	t.persist()
	return draft
}

// Update merges patch into the running draft. Calling it while idle
// is a warned no-op.
func (t *Timer) Update(patch times.DraftPatch) (times.Draft, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.draft == nil {
		t.logger.Warn("draft is not started")
		return times.Draft{}, false
	}

	patch.Apply(t.draft)
	t.persist()
	return *t.draft, true
}

// Stop finalizes the running draft: the duration is measured against
// the clock, the entry is recorded through the orchestrator, and only
// after the create attempt resolves is the draft slot cleared. A stop
// while idle returns nil.
func (t *Timer) Stop(ctx context.Context) *times.Time {
	t.mu.Lock()
	if t.draft == nil {
		t.mu.Unlock()
		return nil
	}
	draft := *t.draft
	t.mu.Unlock()

	entry := times.Time{
		Type:                 draft.Type,
		Start:                draft.Start,
		Duration:             times.Diff(t.now(), draft.Start),
		Notes:                draft.Notes,
		ProjectID:            draft.ProjectID,
		OrganisationID:       draft.OrganisationID,
		OrganisationMemberID: draft.OrganisationMemberID,
	}

	created := t.recorder.Create(ctx, entry)

	t.mu.Lock()
	t.draft = nil
	t.persist()
	t.mu.Unlock()

	return &created
}

// Toggle starts a draft when idle and stops the running one
// otherwise. Exactly one of the results is non-nil.
func (t *Timer) Toggle(ctx context.Context) (*times.Draft, *times.Time) {
	if t.Running() {
		return nil, t.Stop(ctx)
	}
	draft := t.Start(times.DraftPatch{})
	return &draft, nil
}

// Reset discards the running draft without recording anything.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.draft == nil {
		return
	}
	t.draft = nil
	t.persist()
}

// persist mirrors the draft slot to durable storage. Callers hold the
// lock.
func (t *Timer) persist() {
	ctx := context.Background()
	if t.draft == nil {
		if err := t.kv.RemoveItem(ctx, storage.KeyDraft); err != nil {
			t.logger.Warn("clearing persisted draft", "error", err)
		}
		return
	}
	if err := storage.Save(ctx, t.kv, storage.KeyDraft, *t.draft); err != nil {
		t.logger.Warn("persisting draft", "error", err)
	}
}
