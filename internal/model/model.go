// Package model defines the domain models for SmartTask.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Model is the interface that all database models must implement.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// KeyPrefix constants for database key generation.
const (
	PrefixTask     = "task"
	PrefixCategory = "category"
	PrefixTag      = "tag"
	PrefixActivity = "activity"
	PrefixSequence = "seq"
)

// DateLayout is the storage format for due dates.
const DateLayout = "2006-01-02"

// idWidth pads integer ids so that keys sort in id order.
const idWidth = 12

// GenerateIDKey builds a key of the form "<prefix>:<zero padded id>".
func GenerateIDKey(prefix string, id int64) string {
	return fmt.Sprintf("%s:%0*d", prefix, idWidth, id)
}

// ParseIDKey extracts the integer id from a key built by GenerateIDKey.
func ParseIDKey(key string) (int64, error) {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return 0, fmt.Errorf("malformed key %q", key)
	}
	return strconv.ParseInt(key[i+1:], 10, 64)
}
