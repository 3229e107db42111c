// Package config loads SmartTask settings.
//
// Values are resolved in priority order:
//  1. Defaults
//  2. TOML file ($XDG_CONFIG_HOME/smarttask/config.toml, or --config)
//  3. SMARTTASK_* environment variables
//
// Command-line flags are applied on top by the runtime package.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/export"
	"github.com/manav03panchal/smarttask/internal/history"
	"github.com/manav03panchal/smarttask/internal/logging"
)

// Default values.
const (
	DefaultBackend         = "badger"
	DefaultMaxDepth        = history.DefaultMaxDepth
	DefaultDueSoonDays     = 3
	DefaultRefreshInterval = time.Minute
	DefaultDelimiter       = ";"
	DefaultBOM             = true
	DefaultLogLevel        = "warn"

	// FileName is the config file name inside the config directory.
	FileName = "config.toml"
)

// Config holds the full configuration for smarttask.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Undo    UndoConfig    `toml:"undo"`
	Notify  NotifyConfig  `toml:"notify"`
	Export  ExportConfig  `toml:"export"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects the task store.
type StorageConfig struct {
	// Backend is "badger" or "sqlite".
	Backend string `toml:"backend"`
	// Path overrides the backend's default location. Empty means XDG data dir.
	Path string `toml:"path"`
}

// UndoConfig controls the in-session action history.
type UndoConfig struct {
	// MaxDepth bounds the history; the oldest entry is evicted when full.
	// 0 means unbounded.
	MaxDepth int `toml:"max_depth"`
}

// NotifyConfig controls due-date digests.
type NotifyConfig struct {
	DueSoonDays     int      `toml:"due_soon_days"`
	RefreshInterval Duration `toml:"refresh_interval"`
}

// ExportConfig holds CSV export defaults.
type ExportConfig struct {
	Delimiter string `toml:"delimiter"`
	BOM       bool   `toml:"bom"`
}

// LogConfig holds the default log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as "1m30s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Backend: DefaultBackend},
		Undo:    UndoConfig{MaxDepth: DefaultMaxDepth},
		Notify: NotifyConfig{
			DueSoonDays:     DefaultDueSoonDays,
			RefreshInterval: Duration{DefaultRefreshInterval},
		},
		Export: ExportConfig{Delimiter: DefaultDelimiter, BOM: DefaultBOM},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// Dir returns the smarttask config directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, "smarttask")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

// Load reads configuration from path, applies SMARTTASK_* environment
// overrides and validates the result. An empty path means DefaultPath, in
// which case a missing file is not an error. An explicitly named file must
// exist.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile returns the defaults overlaid with the file at path, without
// environment overrides. An empty path means DefaultPath, which may be
// missing; an explicit path must exist.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if err := loadConfigFile(cfg, path); err != nil {
		if !os.IsNotExist(err) || explicit {
			return nil, errors.Wrapf(err, "loading config file %s", path)
		}
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// loadFromEnv applies SMARTTASK_* overrides. Unparseable values are ignored.
func loadFromEnv(c *Config) {
	if v := os.Getenv("SMARTTASK_BACKEND"); v != "" {
		c.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("SMARTTASK_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("SMARTTASK_UNDO_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Undo.MaxDepth = n
		}
	}
	if v := os.Getenv("SMARTTASK_DUE_SOON_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Notify.DueSoonDays = n
		}
	}
	if v := os.Getenv("SMARTTASK_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Notify.RefreshInterval = Duration{d}
		}
	}
	if v := os.Getenv("SMARTTASK_EXPORT_DELIMITER"); v != "" {
		c.Export.Delimiter = v
	}
	if v := os.Getenv("SMARTTASK_EXPORT_BOM"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Export.BOM = b
		}
	}
	if v := os.Getenv("SMARTTASK_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "badger", "sqlite":
	default:
		return errors.NewUserErrorWithField("storage.backend", c.Storage.Backend,
			"Unknown storage backend", "Use 'badger' or 'sqlite'").WithCause(errors.ErrUnknownBackend)
	}
	if c.Undo.MaxDepth < 0 {
		return errors.NewUserErrorWithField("undo.max_depth", strconv.Itoa(c.Undo.MaxDepth),
			"Undo depth cannot be negative", "Use 0 for unbounded history")
	}
	if c.Notify.DueSoonDays < 0 {
		return errors.NewUserErrorWithField("notify.due_soon_days", strconv.Itoa(c.Notify.DueSoonDays),
			"Due-soon window cannot be negative", "Use a number of days such as 3")
	}
	if c.Notify.RefreshInterval.Duration < time.Second {
		return errors.NewUserErrorWithField("notify.refresh_interval", c.Notify.RefreshInterval.String(),
			"Refresh interval is too short", "Use at least 1s, for example 1m")
	}
	if _, err := export.ParseDelimiter(c.Export.Delimiter); err != nil {
		return errors.NewUserErrorWithField("export.delimiter", c.Export.Delimiter,
			"Delimiter must be a single character", "Use ';', ',' or 'tab'").WithCause(err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.NewUserErrorWithField("log.level", c.Log.Level,
			"Unknown log level", "Use debug, info, warn or error").WithCause(err)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Get returns a single value by its dotted key, e.g. "undo.max_depth".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "storage.backend":
		return c.Storage.Backend, nil
	case "storage.path":
		return c.Storage.Path, nil
	case "undo.max_depth":
		return strconv.Itoa(c.Undo.MaxDepth), nil
	case "notify.due_soon_days":
		return strconv.Itoa(c.Notify.DueSoonDays), nil
	case "notify.refresh_interval":
		return c.Notify.RefreshInterval.String(), nil
	case "export.delimiter":
		return c.Export.Delimiter, nil
	case "export.bom":
		return strconv.FormatBool(c.Export.BOM), nil
	case "log.level":
		return c.Log.Level, nil
	}
	return "", unknownKey(key)
}

// Set updates a single value by its dotted key and validates the result.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "storage.backend":
		next.Storage.Backend = strings.ToLower(value)
	case "storage.path":
		next.Storage.Path = value
	case "undo.max_depth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalidValue(key, value, "Use a whole number, 0 for unbounded")
		}
		next.Undo.MaxDepth = n
	case "notify.due_soon_days":
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalidValue(key, value, "Use a whole number of days")
		}
		next.Notify.DueSoonDays = n
	case "notify.refresh_interval":
		d, err := time.ParseDuration(value)
		if err != nil {
			return invalidValue(key, value, "Use a duration such as 30s or 1m")
		}
		next.Notify.RefreshInterval = Duration{d}
	case "export.delimiter":
		next.Export.Delimiter = value
	case "export.bom":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalidValue(key, value, "Use true or false")
		}
		next.Export.BOM = b
	case "log.level":
		next.Log.Level = strings.ToLower(value)
	default:
		return unknownKey(key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Keys lists the settable keys in file order.
func Keys() []string {
	return []string{
		"storage.backend",
		"storage.path",
		"undo.max_depth",
		"notify.due_soon_days",
		"notify.refresh_interval",
		"export.delimiter",
		"export.bom",
		"log.level",
	}
}

func unknownKey(key string) error {
	return errors.NewUserErrorWithField("key", key, "Unknown config key",
		"Run 'smarttask config list' to see available keys")
}

func invalidValue(key, value, suggestion string) error {
	return errors.NewUserErrorWithField(key, value, "Invalid value for "+key, suggestion)
}
