package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/history"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func isolateConfigHome(t *testing.T) {
	t.Helper()
	t.Cleanup(xdg.Reload) // runs after t.Setenv restores the variable
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, 50, cfg.Undo.MaxDepth)
	assert.Equal(t, history.DefaultMaxDepth, cfg.Undo.MaxDepth)
	assert.Equal(t, history.DefaultMaxDepth, history.New(cfg.Undo.MaxDepth).Cap())
	assert.Equal(t, 3, cfg.Notify.DueSoonDays)
	assert.Equal(t, time.Minute, cfg.Notify.RefreshInterval.Duration)
	assert.Equal(t, ";", cfg.Export.Delimiter)
	assert.True(t, cfg.Export.BOM)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "sqlite"
path = "/tmp/tasks.db"

[undo]
max_depth = 0

[notify]
due_soon_days = 7
refresh_interval = "30s"

[export]
delimiter = ","
bom = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/tasks.db", cfg.Storage.Path)
	assert.Equal(t, 0, cfg.Undo.MaxDepth)
	assert.Equal(t, 7, cfg.Notify.DueSoonDays)
	assert.Equal(t, 30*time.Second, cfg.Notify.RefreshInterval.Duration)
	assert.Equal(t, ",", cfg.Export.Delimiter)
	assert.False(t, cfg.Export.BOM)
	// untouched sections keep defaults
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[undo]\nmax_depth = 10\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Undo.MaxDepth)
	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, time.Minute, cfg.Notify.RefreshInterval.Duration)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	isolateConfigHome(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "smarttask", FileName), DefaultPath())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[storage\nbackend = 1"},
		{"unknown key", "[storage]\ncolour = \"red\"\n"},
		{"bad duration", "[notify]\nrefresh_interval = \"soon\"\n"},
		{"bad backend", "[storage]\nbackend = \"postgres\"\n"},
		{"negative depth", "[undo]\nmax_depth = -1\n"},
		{"long delimiter", "[export]\ndelimiter = \";;\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestUnknownBackendSentinel(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "mysql"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownBackend)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[undo]\nmax_depth = 10\n")
	t.Setenv("SMARTTASK_BACKEND", "SQLite")
	t.Setenv("SMARTTASK_DB", "/data/tasks.db")
	t.Setenv("SMARTTASK_UNDO_MAX_DEPTH", "5")
	t.Setenv("SMARTTASK_DUE_SOON_DAYS", "1")
	t.Setenv("SMARTTASK_REFRESH_INTERVAL", "10s")
	t.Setenv("SMARTTASK_EXPORT_DELIMITER", ",")
	t.Setenv("SMARTTASK_EXPORT_BOM", "false")
	t.Setenv("SMARTTASK_LOG_LEVEL", "DEBUG")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/data/tasks.db", cfg.Storage.Path)
	assert.Equal(t, 5, cfg.Undo.MaxDepth)
	assert.Equal(t, 1, cfg.Notify.DueSoonDays)
	assert.Equal(t, 10*time.Second, cfg.Notify.RefreshInterval.Duration)
	assert.Equal(t, ",", cfg.Export.Delimiter)
	assert.False(t, cfg.Export.BOM)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	path := writeConfig(t, "[undo]\nmax_depth = 10\n")
	t.Setenv("SMARTTASK_UNDO_MAX_DEPTH", "5")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Undo.MaxDepth)

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Undo.MaxDepth)
}

func TestEnvInvalidValuesIgnored(t *testing.T) {
	isolateConfigHome(t)
	t.Setenv("SMARTTASK_UNDO_MAX_DEPTH", "lots")
	t.Setenv("SMARTTASK_DUE_SOON_DAYS", "-2")
	t.Setenv("SMARTTASK_REFRESH_INTERVAL", "often")
	t.Setenv("SMARTTASK_EXPORT_BOM", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxDepth, cfg.Undo.MaxDepth)
	assert.Equal(t, DefaultDueSoonDays, cfg.Notify.DueSoonDays)
	assert.Equal(t, DefaultRefreshInterval, cfg.Notify.RefreshInterval.Duration)
	assert.True(t, cfg.Export.BOM)
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	for _, key := range Keys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}

	require.NoError(t, cfg.Set("undo.max_depth", "0"))
	v, _ := cfg.Get("undo.max_depth")
	assert.Equal(t, "0", v)

	require.NoError(t, cfg.Set("notify.refresh_interval", "2m"))
	v, _ = cfg.Get("notify.refresh_interval")
	assert.Equal(t, "2m0s", v)

	require.NoError(t, cfg.Set("export.bom", "false"))
	assert.False(t, cfg.Export.BOM)

	assert.Error(t, cfg.Set("undo.max_depth", "many"))
	assert.Error(t, cfg.Set("storage.backend", "redis"))
	assert.Equal(t, "badger", cfg.Storage.Backend, "failed Set must not change config")

	_, err := cfg.Get("nope")
	assert.True(t, errors.IsUserError(err))
	assert.Error(t, cfg.Set("nope", "1"))
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Set("storage.backend", "sqlite"))
	require.NoError(t, cfg.Set("notify.refresh_interval", "45s"))

	data, err := cfg.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "[storage]")
	assert.Contains(t, string(data), `refresh_interval = "45s"`)

	path := writeConfig(t, string(data))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
