// Package storage provides the persistence layer for SmartTask: the store
// interfaces the application depends on and the default Badger backend.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/model"
)

const (
	// AppName is the application name used for data directories.
	AppName = "smarttask"

	// sequenceBandwidth is how many ids a sequence leases at a time.
	sequenceBandwidth = 16
)

// DB wraps a Badger database connection.
type DB struct {
	db   *badger.DB
	path string
	lock *FileLock

	seqMu sync.Mutex
	seqs  map[string]*badger.Sequence
}

// Options configures the database connection.
type Options struct {
	// Path is the database directory path. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// DataDir returns the application data directory following XDG.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DefaultPath returns the default Badger database path.
func DefaultPath() string {
	return filepath.Join(DataDir(), "db")
}

// Open opens or creates a database at the given path.
func Open(opts Options) (*DB, error) {
	var badgerOpts badger.Options
	var lock *FileLock
	path := ""

	if opts.InMemory || opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		path = opts.Path
		if err := EnsureDirectory(path); err != nil {
			return nil, err
		}
		lock = NewFileLock(path)
		if err := lock.Acquire(); err != nil {
			return nil, lockFailure(path, err)
		}
		badgerOpts = badger.DefaultOptions(path)
	}

	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		if lock != nil {
			_ = lock.Release()
		}
		if IsDatabaseCorrupted(err) {
			return nil, errors.NewSystemErrorWithOp("open database", path, fmt.Errorf("%w: %v", errors.ErrDatabaseCorrupted, err))
		}
		if os.IsPermission(err) {
			return nil, errors.NewSystemErrorWithOp("open database", path, fmt.Errorf("%w: %v", errors.ErrPermissionDenied, err))
		}
		return nil, err
	}

	return &DB{db: db, path: path, lock: lock, seqs: make(map[string]*badger.Sequence)}, nil
}

// OpenWithIntegrityCheck opens the database and refuses to hand it out if
// the integrity scan finds corrupted values.
func OpenWithIntegrityCheck(opts Options) (*DB, error) {
	db, err := Open(opts)
	if err != nil {
		return nil, err
	}
	if err := db.CheckIntegrity(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// CheckIntegrity runs CheckDatabaseIntegrity and converts an unhealthy
// result into an error.
func (d *DB) CheckIntegrity() error {
	status := CheckDatabaseIntegrity(d)
	if status.Healthy {
		return nil
	}
	return errors.NewSystemErrorWithOp("integrity check", fmt.Sprintf("%d problems found", status.ErrorCount), errors.ErrDatabaseCorrupted)
}

// NextID returns the next integer id for the named sequence. Ids start at 1
// and are never reused, even after deletes.
func (d *DB) NextID(name string) (int64, error) {
	d.seqMu.Lock()
	defer d.seqMu.Unlock()

	seq, ok := d.seqs[name]
	if !ok {
		var err error
		seq, err = d.db.GetSequence([]byte(model.PrefixSequence+":"+name), sequenceBandwidth)
		if err != nil {
			return 0, err
		}
		d.seqs[name] = seq
	}

	n, err := seq.Next()
	if err != nil {
		return 0, err
	}
	// Badger sequences start at zero.
	return int64(n) + 1, nil
}

// Close releases leased sequence ranges and closes the database.
func (d *DB) Close() error {
	d.seqMu.Lock()
	for name, seq := range d.seqs {
		_ = seq.Release()
		delete(d.seqs, name)
	}
	d.seqMu.Unlock()
	err := d.db.Close()
	if d.lock != nil {
		if lerr := d.lock.Release(); err == nil {
			err = lerr
		}
	}
	return err
}

// lockFailure turns a lock error into something the CLI can explain.
func lockFailure(path string, err error) error {
	var held *LockError
	if errors.As(err, &held) {
		msg := "database is in use by another smarttask process"
		if held.PID > 0 {
			msg = fmt.Sprintf("%s (PID %d)", msg, held.PID)
		}
		return errors.NewUserError(msg, "Close the dashboard or shell using "+path+" and try again").WithCause(ErrLockAlreadyHeld)
	}
	return errors.NewSystemErrorWithOp("lock database", path, err)
}

// Path returns the on-disk directory, empty for in-memory databases.
func (d *DB) Path() string {
	return d.path
}

// Badger returns the underlying Badger database for advanced operations.
func (d *DB) Badger() *badger.DB {
	return d.db
}
