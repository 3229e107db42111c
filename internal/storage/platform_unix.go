//go:build !windows

package storage

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// GetDiskSpace reports the filesystem holding path, or its nearest
// existing ancestor.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	path = existingAncestor(path)

	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil, fmt.Errorf("statfs %s: %w", path, err)
	}
	bsize := uint64(st.Bsize)
	info := &DiskSpaceInfo{
		Path:       path,
		TotalBytes: st.Blocks * bsize,
		FreeBytes:  st.Bavail * bsize,
	}
	info.UsedBytes = info.TotalBytes - info.FreeBytes
	return info, nil
}

func isDiskFullError(err error) bool {
	return errors.Is(err, unix.ENOSPC)
}

func flockAcquire(file *os.File) error {
	err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EWOULDBLOCK):
		return ErrLockAlreadyHeld
	}
	return fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
}

func flockRelease(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_UN)
}

// isProcessRunning probes pid with signal 0. EPERM means the process
// exists but belongs to someone else.
func isProcessRunning(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
