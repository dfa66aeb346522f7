package settings_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeity-dev/zeity/internal/settings"
	"github.com/zeity-dev/zeity/internal/storage"
)

func newTestKV(t *testing.T) *storage.SQLiteKV {
	t.Helper()

	kv, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err, "failed to create test storage")

	t.Cleanup(func() {
		kv.Close()
	})

	return kv
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDefaults(t *testing.T) {
	got := settings.Defaults()

	require.Equal(t, "en", got.Locale)
	require.Equal(t, "system", got.ThemeMode)
	require.Equal(t, "sky", got.ThemePrimary)
	require.False(t, got.RoundTimes)
	require.False(t, got.CalculateBreaks)
}

func TestService_StartsFromBaseWhenNothingStored(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	base := settings.Defaults()
	base.RoundTimes = true

	svc := settings.NewService(ctx, kv, base, discardLogger())
	require.Equal(t, base, svc.Get())
}

func TestService_SetPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	svc := settings.NewService(ctx, kv, settings.Defaults(), discardLogger())
	updated := svc.Set(ctx, func(s *settings.Settings) {
		s.CalculateBreaks = true
		s.Locale = "de"
	})
	require.True(t, updated.CalculateBreaks)

	restored := settings.NewService(ctx, kv, settings.Defaults(), discardLogger())
	require.True(t, restored.Get().CalculateBreaks)
	require.Equal(t, "de", restored.Get().Locale)
}

func TestService_CorruptStateFallsBackToBase(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	require.NoError(t, kv.SetItem(ctx, storage.KeySettings, []byte("{broken")))

	svc := settings.NewService(ctx, kv, settings.Defaults(), discardLogger())
	require.Equal(t, settings.Defaults(), svc.Get())
}
