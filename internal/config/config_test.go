package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ZEITY_CONFIG_PATH",
		"ZEITY_REMOTE_URL",
		"ZEITY_TOKEN",
		"ZEITY_STORAGE_PATH",
		"ZEITY_LOG_LEVEL",
		"ZEITY_ROUND_TIMES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://zeity.dev", cfg.Remote.BaseURL)
	require.Empty(t, cfg.Remote.Token)
	require.NotEmpty(t, cfg.Storage.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.Tracking.RoundTimes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZEITY_REMOTE_URL", "https://staging.zeity.dev")
	t.Setenv("ZEITY_TOKEN", "secret")
	t.Setenv("ZEITY_STORAGE_PATH", "/tmp/zeity-test.db")
	t.Setenv("ZEITY_LOG_LEVEL", "debug")
	t.Setenv("ZEITY_ROUND_TIMES", "true")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://staging.zeity.dev", cfg.Remote.BaseURL)
	require.Equal(t, "secret", cfg.Remote.Token)
	require.Equal(t, "/tmp/zeity-test.db", cfg.Storage.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.Tracking.RoundTimes)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
remote:
  base_url: https://self-hosted.example
  token: file-token
log:
  level: warn
tracking:
  round_times: true
  calculate_breaks: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("ZEITY_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://self-hosted.example", cfg.Remote.BaseURL)
	require.Equal(t, "file-token", cfg.Remote.Token)
	require.Equal(t, "warn", cfg.Log.Level)
	require.True(t, cfg.Tracking.RoundTimes)
	require.True(t, cfg.Tracking.CalculateBreaks)
}

func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remote:\n  token: file-token\n"), 0o600))
	t.Setenv("ZEITY_CONFIG_PATH", path)
	t.Setenv("ZEITY_TOKEN", "env-token")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "env-token", cfg.Remote.Token)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZEITY_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidRoundTimes(t *testing.T) {
	clearEnv(t)
	t.Setenv("ZEITY_ROUND_TIMES", "definitely")

	_, err := Load()
	require.Error(t, err)
}
