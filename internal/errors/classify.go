package errors

import (
	"errors"
	"syscall"
)

// Category represents the type of error for display and handling purposes.
type Category int

const (
	// CategoryUnknown is the default for unclassified errors.
	CategoryUnknown Category = iota
	// CategoryUser indicates an error the user can fix (bad input, missing args).
	CategoryUser
	// CategorySystem indicates a system-level error (disk full, corrupt store).
	CategorySystem
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryUser:
		return "user"
	case CategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// userSentinels are plain sentinels that always indicate bad input.
var userSentinels = []error{
	ErrTaskNotFound,
	ErrCategoryNotFound,
	ErrCategoryInUse,
	ErrTagNotFound,
	ErrDuplicateName,
	ErrTitleRequired,
	ErrInvalidStatus,
	ErrInvalidPriority,
	ErrInvalidDate,
	ErrInvalidColor,
	ErrAlreadyCompleted,
	ErrUnknownBackend,
}

// Classify determines the category of an error.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	if IsUserError(err) {
		return CategoryUser
	}
	if IsSystemError(err) {
		return CategorySystem
	}

	for _, sentinel := range userSentinels {
		if errors.Is(err, sentinel) {
			return CategoryUser
		}
	}

	if isSystemLevel(err) {
		return CategorySystem
	}

	return CategoryUnknown
}

// Process exit codes by category.
const (
	ExitOK     = 0
	ExitUser   = 1
	ExitSystem = 2
)

// ExitCode maps err to the process exit status. Unclassified errors count
// as user errors.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case Classify(err) == CategorySystem:
		return ExitSystem
	}
	return ExitUser
}

// isSystemLevel checks if an error is a system-level error.
func isSystemLevel(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOSPC, syscall.EACCES, syscall.EPERM, syscall.EIO, syscall.EROFS:
			return true
		}
	}

	return errors.Is(err, ErrDiskFull) ||
		errors.Is(err, ErrDatabaseCorrupted) ||
		errors.Is(err, ErrPermissionDenied)
}
