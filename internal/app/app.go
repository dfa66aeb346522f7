// Package app is the composition root: it constructs the stores,
// bridge, services and timer once at startup and hands them out as an
// explicit context object. Durable state is restored before any
// orchestration can run.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zeity-dev/zeity/internal/config"
	"github.com/zeity-dev/zeity/internal/domain/project"
	"github.com/zeity-dev/zeity/internal/domain/times"
	"github.com/zeity-dev/zeity/internal/settings"
	"github.com/zeity-dev/zeity/internal/storage"
	"github.com/zeity-dev/zeity/internal/store"
	"github.com/zeity-dev/zeity/internal/sync"
	"github.com/zeity-dev/zeity/internal/timer"
	"github.com/zeity-dev/zeity/internal/transport"
)

// App bundles the engine's process-wide components.
type App struct {
	Config config.Config
	Logger *slog.Logger

	KV       *storage.SQLiteKV
	Bridge   *storage.Bridge
	Settings *settings.Service
	Times    *sync.TimeService
	Projects *sync.ProjectService
	Timer    *timer.Timer
}

// tokenSession treats a configured API token as the active session.
type tokenSession struct {
	token string
}

func (s tokenSession) LoggedIn() bool { return s.token != "" }

// New builds the whole engine from configuration.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := ensureStorageDir(cfg.Storage.Path); err != nil {
		return nil, fmt.Errorf("preparing storage path: %w", err)
	}
	kv, err := storage.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	base := settings.Defaults()
	base.RoundTimes = cfg.Tracking.RoundTimes
	base.CalculateBreaks = cfg.Tracking.CalculateBreaks
	settingsSvc := settings.NewService(ctx, kv, base, logger)

	timeStore := store.New[times.Time]("times", logger)
	projectStore := store.New[project.Project]("projects", logger)

	// Seed both stores from durable state and keep the local-only
	// subsets mirrored back. Records the server owns are not
	// re-persisted to the device.
	bridge := storage.NewBridge(kv, logger)
	storage.Bind(ctx, bridge, storage.KeyTimes, timeStore,
		func(t times.Time) bool { return !t.IsOnline() })
	storage.Bind(ctx, bridge, storage.KeyProjects, projectStore,
		func(p project.Project) bool { return !p.IsOnline() })

	session := tokenSession{token: cfg.Remote.Token}
	client := transport.NewClient(cfg.Remote.BaseURL, logger, transport.WithToken(cfg.Remote.Token))

	timeSvc := sync.NewTimeService(timeStore, client, session, settingsSvc, logger)
	projectSvc := sync.NewProjectService(projectStore, client, session, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		KV:       kv,
		Bridge:   bridge,
		Settings: settingsSvc,
		Times:    timeSvc,
		Projects: projectSvc,
		Timer:    timer.New(ctx, timeSvc, kv, logger),
	}, nil
}

// Close flushes pending persistence and releases the storage handle.
func (a *App) Close() {
	a.Bridge.Close()
	if err := a.KV.Close(); err != nil {
		a.Logger.Warn("closing storage", "error", err)
	}
}

func ensureStorageDir(path string) error {
	if path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
