// Package kv provides the synchronous key-value stores that hold persisted state.
//
// A Store behaves like browser local storage: string keys map to string
// values, reads and writes are synchronous, and a failed write leaves the
// previous value in place.
package kv

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var (
	// ErrQuotaExceeded is returned by Set when a write would exceed the quota.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrInvalidKey is returned for keys outside [A-Za-z0-9._-]+.
	ErrInvalidKey = errors.New("invalid key")

	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store closed")
)

// Store is a synchronous string key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	// A failed Set must leave the previous value untouched.
	Set(key, value string) error

	// Close releases the underlying resources.
	Close() error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateKey reports ErrInvalidKey for keys that cannot be stored.
func ValidateKey(key string) error {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Backends returns the backend names Open accepts.
func Backends() []string {
	return []string{BackendFile, BackendBolt, BackendSQLite, BackendMemory}
}

// Open opens the named backend rooted at dir.
// The memory backend ignores dir.
func Open(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendFile, "":
		return OpenFile(dir)
	case BackendBolt:
		return OpenBolt(filepath.Join(dir, "taskman.db"))
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "taskman.sqlite"))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}
