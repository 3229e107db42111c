package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/logging"
)

// integrityScanLimit bounds how many values CheckDatabaseIntegrity reads.
const integrityScanLimit = 1000

// RecoveryStatus represents the result of a database health check.
type RecoveryStatus struct {
	Healthy     bool      `json:"healthy"`
	Corrupted   bool      `json:"corrupted"`
	LastCheck   time.Time `json:"last_check"`
	KeysScanned int       `json:"keys_scanned"`
	ErrorCount  int       `json:"error_count"`
	Errors      []string  `json:"errors,omitempty"`
	Recoverable bool      `json:"recoverable"`
}

// CheckDatabaseIntegrity reads stored values and reports any that cannot be
// read or decoded.
func CheckDatabaseIntegrity(db *DB) *RecoveryStatus {
	status := &RecoveryStatus{
		LastCheck: time.Now(),
		Healthy:   true,
	}

	if db == nil || db.db == nil {
		status.Healthy = false
		status.Corrupted = true
		status.Errors = append(status.Errors, "database not initialized")
		return status
	}

	seqPrefix := []byte("seq:")
	err := db.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid() && status.KeysScanned < integrityScanLimit; it.Next() {
			item := it.Item()
			status.KeysScanned++
			// Sequence counters are raw uint64s, not JSON.
			if strings.HasPrefix(string(item.Key()), string(seqPrefix)) {
				continue
			}
			err := item.Value(func(val []byte) error {
				if !json.Valid(val) {
					return fmt.Errorf("value is not valid JSON")
				}
				return nil
			})
			if err != nil {
				status.Errors = append(status.Errors, fmt.Sprintf("corrupted value at key %s: %v", item.Key(), err))
				status.ErrorCount++
			}
		}
		return nil
	})

	if err != nil {
		status.Errors = append(status.Errors, fmt.Sprintf("iteration error: %v", err))
		status.ErrorCount++
	}

	if status.ErrorCount > 0 {
		status.Healthy = false
		status.Corrupted = true
		status.Recoverable = status.ErrorCount < 10
	}

	return status
}

// CreateBackup copies the database directory into a timestamped folder
// under backups/ next to it and returns the backup path.
func CreateBackup(dbPath string) (string, error) {
	if dbPath == "" {
		return "", fmt.Errorf("database path is empty")
	}

	backupDir := filepath.Join(filepath.Dir(dbPath), "backups")
	if err := EnsureDirectory(backupDir); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102-150405")
	backupPath := filepath.Join(backupDir, fmt.Sprintf("%s-backup-%s", filepath.Base(dbPath), timestamp))

	if err := copyDir(dbPath, backupPath); err != nil {
		return "", fmt.Errorf("failed to copy database: %w", err)
	}

	logging.Info("database backup created", logging.KeyOperation, "backup", "path", backupPath)
	return backupPath, nil
}

// copyDir copies a file or directory recursively.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !srcInfo.IsDir() {
		return copyFile(src, dst)
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Name() == LockFileName {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return SafeWrite(dst, data, srcInfo.Mode())
}

// AttemptRecovery backs up a Badger directory, reopens it keeping only the
// latest versions and runs value log GC.
func AttemptRecovery(dbPath string) (string, error) {
	lock := NewFileLock(dbPath)
	if err := lock.Acquire(); err != nil {
		return "", lockFailure(dbPath, err)
	}
	defer lock.Release()

	backupPath, err := CreateBackup(dbPath)
	if err != nil {
		logging.Warn("failed to create backup before recovery", logging.KeyError, err)
	}

	opts := badger.DefaultOptions(dbPath).
		WithLoggingLevel(badger.ERROR).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return backupPath, errors.NewSystemError("failed to open database for recovery", err)
	}
	defer db.Close()

	for db.RunValueLogGC(0.5) == nil {
	}

	logging.Info("database recovery attempted", "backup_path", backupPath, logging.KeyStatus, "completed")
	return backupPath, nil
}

var corruptionPatterns = []string{
	"checksum mismatch",
	"corrupt",
	"unexpected eof",
	"bad magic",
	"truncated",
	"malformed",
}

// IsDatabaseCorrupted reports whether err indicates on-disk corruption.
func IsDatabaseCorrupted(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errors.ErrDatabaseCorrupted) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range corruptionPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
