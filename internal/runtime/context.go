// Package runtime provides the application runtime context for SmartTask:
// configuration, logging, the task store, the controller and the output
// formatter for one process.
package runtime

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/manav03panchal/smarttask/internal/app"
	"github.com/manav03panchal/smarttask/internal/config"
	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/history"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/output"
	"github.com/manav03panchal/smarttask/internal/storage"
	"github.com/manav03panchal/smarttask/internal/storage/sqlite"
)

// MemoryPath selects an in-memory store for either backend.
const MemoryPath = ":memory:"

// Context holds the application runtime context.
type Context struct {
	Config    *config.Config
	Formatter *output.Formatter
	Repos     storage.Repos
	App       *app.Controller

	// Backend is the storage backend in use and StorePath its location,
	// empty when in memory.
	Backend   string
	StorePath string

	// DB is the Badger handle when Backend is "badger", SQLite the store
	// when it is "sqlite". The other one is nil.
	DB     *storage.DB
	SQLite *sqlite.Store

	// Ctx carries the request id for this invocation.
	Ctx context.Context

	Debug bool

	closer io.Closer
}

// Options configures the runtime context. Non-empty fields override the
// loaded configuration.
type Options struct {
	ConfigPath string
	Backend    string
	DBPath     string
	InMemory   bool
	Format     output.Format
	ColorMode  output.ColorMode
	Debug      bool
	// Output defaults to stdout.
	Output io.Writer
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New loads configuration, opens the configured store and builds the
// controller.
func New(opts Options) (*Context, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, opts)
}

// NewWithConfig is New with an already loaded configuration.
func NewWithConfig(cfg *config.Config, opts Options) (*Context, error) {
	if opts.Backend != "" {
		cfg.Storage.Backend = opts.Backend
	}
	if opts.DBPath != "" {
		cfg.Storage.Path = opts.DBPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	initLogging(cfg, opts.Debug)
	ctx := logging.NewRequestContext(context.Background())
	logger := logging.LoggerFromContext(ctx)

	inMemory := opts.InMemory || cfg.Storage.Path == MemoryPath
	store, err := openStore(cfg.Storage.Backend, cfg.Storage.Path, inMemory)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened",
		logging.KeyBackend, cfg.Storage.Backend,
		"path", store.path)

	controller := app.New(store.repos, history.New(cfg.Undo.MaxDepth), app.Options{Logger: logger})
	if _, err := controller.EnsureDefaultCategories(); err != nil {
		store.closer.Close()
		return nil, errors.Wrap(err, "seeding categories")
	}

	formatter := output.NewFormatter()
	if opts.Output != nil {
		formatter.Writer = opts.Output
	}
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}

	return &Context{
		Config:    cfg,
		Formatter: formatter,
		Repos:     store.repos,
		App:       controller,
		Backend:   cfg.Storage.Backend,
		StorePath: store.path,
		DB:        store.badger,
		SQLite:    store.sqlite,
		Ctx:       ctx,
		Debug:     opts.Debug,
		closer:    store.closer,
	}, nil
}

func initLogging(cfg *config.Config, debug bool) {
	if debug {
		logging.InitDebug()
		return
	}
	lc := logging.DefaultConfig()
	if level, err := logging.ParseLevel(cfg.Log.Level); err == nil {
		lc.Level = level
	}
	logging.Init(lc)
}

type openedStore struct {
	repos  storage.Repos
	closer io.Closer
	path   string
	badger *storage.DB
	sqlite *sqlite.Store
}

func openStore(backend, path string, inMemory bool) (*openedStore, error) {
	if inMemory {
		path = ""
	}

	switch backend {
	case storage.BackendBadger:
		if !inMemory && path == "" {
			path = storage.DefaultPath()
		}
		if path != "" {
			if err := checkDisk(path); err != nil {
				return nil, err
			}
		}
		db, err := storage.Open(storage.Options{Path: path, InMemory: inMemory})
		if err != nil {
			return nil, err
		}
		return &openedStore{repos: storage.NewRepos(db), closer: db, path: db.Path(), badger: db}, nil

	case storage.BackendSQLite:
		if !inMemory && path == "" {
			path = sqlite.DefaultPath()
		}
		if path != "" {
			if err := checkDisk(filepath.Dir(path)); err != nil {
				return nil, err
			}
		}
		st, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		return &openedStore{repos: st.Repos(), closer: st, path: st.Path(), sqlite: st}, nil
	}

	return nil, errors.NewUserErrorWithField("backend", backend,
		"Unknown storage backend", "").WithCause(errors.ErrUnknownBackend)
}

func checkDisk(path string) error {
	if err := storage.CheckDiskSpace(path); err != nil {
		return err
	}
	if warning := storage.CheckDiskSpaceWarning(path); warning != "" {
		logging.Warn(warning, "path", path)
	}
	return nil
}

// Close closes the store.
func (c *Context) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}

// BeginCommand tags the context with the command about to run. With fresh
// set the command also gets its own request id, as each shell line does.
func (c *Context) BeginCommand(path string, fresh bool) {
	base := c.Ctx
	if fresh || base == nil {
		base = logging.NewRequestContext(context.Background())
	}
	c.Ctx = logging.WithCommand(base, path)
	c.App.SetLogger(c.Logger())
}

// Logger returns a logger tagged with this invocation's request id.
func (c *Context) Logger() *slog.Logger {
	return logging.LoggerFromContext(c.Ctx)
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.IsJSON()
}

// Names loads category and tag names for display.
func (c *Context) Names() (output.Names, error) {
	cats, err := c.App.ListCategories()
	if err != nil {
		return output.Names{}, err
	}
	tags, err := c.App.ListTags()
	if err != nil {
		return output.Names{}, err
	}
	return output.NewNames(cats, tags), nil
}
