package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LockFileName is the PID lock file kept inside a Badger directory.
const LockFileName = "smarttask.lock"

var (
	ErrLockAcquireFailed = errors.New("failed to acquire database lock")
	ErrLockAlreadyHeld   = errors.New("database is locked by another process")
)

// FileLock is an advisory lock guarding a database directory. The holder
// writes its PID into the file so a second process can say who owns it.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns an unacquired lock for dir.
func NewFileLock(dir string) *FileLock {
	return &FileLock{path: filepath.Join(dir, LockFileName)}
}

// LockError reports a lock held by a live process.
type LockError struct {
	PID int
}

func (e *LockError) Error() string {
	if e.PID > 0 {
		return fmt.Sprintf("%v (PID %d)", ErrLockAlreadyHeld, e.PID)
	}
	return ErrLockAlreadyHeld.Error()
}

func (e *LockError) Unwrap() error {
	return ErrLockAlreadyHeld
}

// Acquire takes the lock without blocking. A lock file left behind by a
// dead process is removed first.
func (l *FileLock) Acquire() error {
	if l.file != nil {
		return nil
	}
	if pid := l.readPID(); pid > 0 && pid != os.Getpid() && !isProcessRunning(pid) {
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
		}
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
	}
	if err := flockAcquire(file); err != nil {
		file.Close()
		if errors.Is(err, ErrLockAlreadyHeld) {
			return &LockError{PID: l.readPID()}
		}
		return err
	}

	if err := writePID(file); err != nil {
		_ = flockRelease(file)
		file.Close()
		return fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
	}
	l.file = file
	return nil
}

func writePID(file *os.File) error {
	if err := file.Truncate(0); err != nil {
		return err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(file, "%d", os.Getpid()); err != nil {
		return err
	}
	return file.Sync()
}

// Release drops the lock and removes the file. Safe to call twice.
func (l *FileLock) Release() error {
	if l.file == nil {
		return nil
	}
	file := l.file
	l.file = nil

	unlockErr := flockRelease(file)
	if err := file.Close(); err != nil {
		return err
	}
	if unlockErr != nil {
		return unlockErr
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Held reports whether this process currently owns the lock.
func (l *FileLock) Held() bool {
	return l.file != nil
}

// readPID returns 0 when the file is missing or unparsable.
func (l *FileLock) readPID() int {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}
