package runtime

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/smarttask/internal/app"
	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/output"
	"github.com/manav03panchal/smarttask/internal/storage"
)

// isolate points XDG config and data homes at temp dirs so no user files leak in.
func isolate(t *testing.T) string {
	t.Helper()
	t.Cleanup(xdg.Reload)
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	for _, key := range []string{"SMARTTASK_BACKEND", "SMARTTASK_DB", "SMARTTASK_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	xdg.Reload()
	return root
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Empty(t, opts.DBPath)
	assert.False(t, opts.InMemory)
	assert.Equal(t, output.FormatCLI, opts.Format)
	assert.Equal(t, output.ColorAuto, opts.ColorMode)
	assert.False(t, opts.Debug)
}

func TestNewInMemoryBothBackends(t *testing.T) {
	isolate(t)

	for _, backend := range []string{storage.BackendBadger, storage.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx, err := New(Options{Backend: backend, InMemory: true})
			require.NoError(t, err)
			defer ctx.Close()

			assert.Equal(t, backend, ctx.Backend)
			assert.Empty(t, ctx.StorePath)
			assert.NotNil(t, ctx.App)
			assert.NotNil(t, ctx.Repos.Tasks)
			assert.NotEmpty(t, logging.RequestIDFromContext(ctx.Ctx))
			if backend == storage.BackendBadger {
				assert.NotNil(t, ctx.DB)
			} else {
				assert.Nil(t, ctx.DB)
			}

			cats, err := ctx.App.ListCategories()
			require.NoError(t, err)
			assert.Len(t, cats, len(model.DefaultCategories))
		})
	}
}

func TestNewWithOptions(t *testing.T) {
	isolate(t)
	var buf bytes.Buffer

	ctx, err := New(Options{
		InMemory:  true,
		Format:    output.FormatJSON,
		ColorMode: output.ColorNever,
		Debug:     true,
		Output:    &buf,
	})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, output.FormatJSON, ctx.Formatter.Format)
	assert.Equal(t, output.ColorNever, ctx.Formatter.ColorMode)
	assert.True(t, ctx.IsJSON())
	assert.True(t, ctx.Debug)

	ctx.Formatter.Println("hello")
	assert.Equal(t, "hello\n", buf.String())
}

func TestNewMemoryFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SMARTTASK_DB", MemoryPath)

	ctx, err := New(Options{})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Empty(t, ctx.StorePath)
}

func TestNewFileBacked(t *testing.T) {
	root := isolate(t)

	t.Run("badger default path", func(t *testing.T) {
		ctx, err := New(Options{})
		require.NoError(t, err)
		defer ctx.Close()

		assert.Equal(t, storage.DefaultPath(), ctx.StorePath)
		assert.DirExists(t, ctx.StorePath)
	})

	t.Run("sqlite explicit path", func(t *testing.T) {
		path := filepath.Join(root, "tasks", "smarttask.db")
		ctx, err := New(Options{Backend: storage.BackendSQLite, DBPath: path})
		require.NoError(t, err)
		defer ctx.Close()

		assert.Equal(t, path, ctx.StorePath)
		assert.FileExists(t, path)
	})
}

func TestNewPersistsAcrossReopen(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "persist.db")

	ctx, err := New(Options{Backend: storage.BackendSQLite, DBPath: path})
	require.NoError(t, err)
	task, err := ctx.App.CreateTask(app.TaskInput{Title: "Buy milk"})
	require.NoError(t, err)
	require.NoError(t, ctx.Close())

	ctx, err = New(Options{Backend: storage.BackendSQLite, DBPath: path})
	require.NoError(t, err)
	defer ctx.Close()

	got, err := ctx.App.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)

	// Seeding is idempotent.
	cats, err := ctx.App.ListCategories()
	require.NoError(t, err)
	assert.Len(t, cats, len(model.DefaultCategories))

	// Undo history does not survive the process.
	assert.Equal(t, 0, ctx.App.History().Len())
}

func TestNewUnknownBackend(t *testing.T) {
	isolate(t)

	_, err := New(Options{Backend: "postgres", InMemory: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownBackend))
}

func TestNewUsesConfigFile(t *testing.T) {
	root := isolate(t)
	cfgPath := filepath.Join(root, "custom.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[storage]
backend = "sqlite"
path = ":memory:"

[undo]
max_depth = 3
`), 0o644))

	ctx, err := New(Options{ConfigPath: cfgPath})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, storage.BackendSQLite, ctx.Backend)
	assert.Empty(t, ctx.StorePath)
	assert.Equal(t, 3, ctx.App.History().Cap())
}

func TestCloseTwice(t *testing.T) {
	isolate(t)

	ctx, err := New(Options{InMemory: true})
	require.NoError(t, err)

	assert.NoError(t, ctx.Close())
	assert.NoError(t, ctx.Close())
}

func TestNames(t *testing.T) {
	isolate(t)

	ctx, err := New(Options{InMemory: true})
	require.NoError(t, err)
	defer ctx.Close()

	tag, err := ctx.App.CreateTag("urgent", "#ff0000")
	require.NoError(t, err)

	names, err := ctx.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent"}, names.TagNames([]int64{tag.ID}))
	assert.Len(t, names.Categories, len(model.DefaultCategories))
}

func TestFormatters(t *testing.T) {
	isolate(t)

	ctx, err := New(Options{InMemory: true})
	require.NoError(t, err)
	defer ctx.Close()

	assert.NotNil(t, ctx.CLIFormatter())
	assert.NotNil(t, ctx.JSONFormatter())
	assert.NotNil(t, ctx.Logger())
	assert.False(t, ctx.IsJSON())
}

func TestBeginCommand(t *testing.T) {
	isolate(t)

	ctx, err := New(Options{InMemory: true})
	require.NoError(t, err)
	defer ctx.Close()

	first := logging.RequestIDFromContext(ctx.Ctx)
	require.NotEmpty(t, first)

	ctx.BeginCommand("smarttask list", false)
	assert.Equal(t, "smarttask list", logging.CommandFromContext(ctx.Ctx))
	assert.Equal(t, first, logging.RequestIDFromContext(ctx.Ctx))

	ctx.BeginCommand("smarttask undo", true)
	assert.Equal(t, "smarttask undo", logging.CommandFromContext(ctx.Ctx))
	assert.NotEqual(t, first, logging.RequestIDFromContext(ctx.Ctx), "shell lines get their own request id")
}
