package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigService(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.artic.edu/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout())
	assert.Equal(t, ScreenExplore, cfg.UISettings.StartScreen)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.UISettings.StartScreen = ScreenFavorites
	cfg.API.RequestsPerSecond = 2.5
	cfg.Storage.DataDir = "/tmp/artgrip-data"
	require.NoError(t, cs.Save(cfg))

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n\n[ui]\nstart_screen = \"gallery\"\n"), 0644))

	cfg, err := NewConfigService(path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ScreenExplore, cfg.UISettings.StartScreen, "unknown screens fall back to explore")
	assert.Equal(t, DefaultConfig().API, cfg.API)
}

func TestLoadFromPathErrors(t *testing.T) {
	dir := t.TempDir()
	cs := NewConfigService("")

	_, err := cs.LoadFromPath(filepath.Join(dir, "nope.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("this is = = not toml"), 0644))
	_, err = cs.LoadFromPath(bad)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ARTGRIP_API_BASE", "http://localhost:9999/api/v1")
	t.Setenv("ARTGRIP_LOG_LEVEL", "warn")
	t.Setenv("ARTGRIP_RATE_LIMIT", "0")
	t.Setenv("ARTGRIP_DATA_DIR", "/var/lib/artgrip")

	cs := NewConfigService(filepath.Join(t.TempDir(), "config.toml"))
	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/api/v1", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 0.0, cfg.API.RequestsPerSecond)
	assert.Equal(t, "/var/lib/artgrip", cfg.Storage.DataDir)
	assert.Equal(t, "https://www.artic.edu/iiif/2", cfg.API.ImageBaseURL)
}

func TestEnvOverrideRejectsGarbage(t *testing.T) {
	t.Setenv("ARTGRIP_RATE_LIMIT", "fast")
	_, err := NewConfigService(filepath.Join(t.TempDir(), "config.toml")).Load()
	assert.Error(t, err)
}
