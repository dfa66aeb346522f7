// Package settings holds the user preferences the engine consults,
// persisted across restarts under their own durable key.
package settings

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zeity-dev/zeity/internal/storage"
)

// Settings are the device-local user preferences.
type Settings struct {
	Locale       string `json:"locale"`
	ThemeMode    string `json:"themeMode"`
	ThemePrimary string `json:"themePrimary"`

	OpenTimeDetailsOnStart bool `json:"openTimeDetailsOnStart"`
	OpenTimeDetailsOnStop  bool `json:"openTimeDetailsOnStop"`
	CalculateBreaks        bool `json:"calculateBreaks"`
	RoundTimes             bool `json:"roundTimes"`
}

// Defaults returns the out-of-the-box settings.
func Defaults() Settings {
	return Settings{
		Locale:       "en",
		ThemeMode:    "system",
		ThemePrimary: "sky",
	}
}

// Service owns the current settings and writes them through to
// durable storage on every change.
type Service struct {
	kv     storage.KV
	logger *slog.Logger

	mu      sync.RWMutex
	current Settings
}

// NewService restores persisted settings, falling back to base when
// nothing (or nothing readable) is stored.
func NewService(ctx context.Context, kv storage.KV, base Settings, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	current := base
	if stored, ok := storage.Load[Settings](ctx, kv, storage.KeySettings, logger); ok {
		current = stored
	}
	return &Service{kv: kv, logger: logger, current: current}
}

// Get returns the current settings.
func (s *Service) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set applies mutate to the settings and persists the result.
func (s *Service) Set(ctx context.Context, mutate func(*Settings)) Settings {
	s.mu.Lock()
	mutate(&s.current)
	updated := s.current
	s.mu.Unlock()

	if err := storage.Save(ctx, s.kv, storage.KeySettings, updated); err != nil {
		s.logger.Warn("persisting settings", "error", err)
	}
	return updated
}
