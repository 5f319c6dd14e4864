package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
theme: dusk
locale: ES
timer:
  auto_advance: true
notifications:
  sound: false
`), 0o644))
	t.Setenv("POMO_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dusk", cfg.Theme)
	assert.Equal(t, "es", cfg.Locale)
	assert.True(t, cfg.Timer.AutoAdvance)
	assert.False(t, cfg.Timer.ResumeOnLaunch)
	assert.True(t, cfg.Notifications.Enabled)
	assert.False(t, cfg.Notifications.Sound)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.Local, Config{}.Location())
	assert.Equal(t, time.UTC, Config{Timezone: "UTC"}.Location())
	assert.Equal(t, time.Local, Config{Timezone: "Mars/Olympus"}.Location())
}
