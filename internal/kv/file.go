package kv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	fileValueSuffix = ".value"
	fileLockName    = "taskman.lock"
)

// File stores each key in its own file under a directory.
// Writes go to a temp file that is renamed into place while holding an
// exclusive lock on the directory's lock file; reads hold a shared lock.
type File struct {
	dir string
	flk *flock.Flock
}

// OpenFile opens (creating if needed) a file-backed store in dir.
func OpenFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("file backend: data directory required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("file backend: create data dir: %w", err)
	}
	return &File{
		dir: dir,
		flk: flock.New(filepath.Join(dir, fileLockName)),
	}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+fileValueSuffix)
}

// Get implements Store.
func (f *File) Get(key string) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	if err := f.flk.RLock(); err != nil {
		return "", false, fmt.Errorf("file backend: lock: %w", err)
	}
	defer f.flk.Unlock()

	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("file backend: read %s: %w", key, err)
	}
	return string(b), true, nil
}

// Set implements Store.
func (f *File) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := f.flk.Lock(); err != nil {
		return fmt.Errorf("file backend: lock: %w", err)
	}
	defer f.flk.Unlock()

	tmp, err := os.CreateTemp(f.dir, ".tmp-"+key+"-*")
	if err != nil {
		return fmt.Errorf("file backend: create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("file backend: write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("file backend: sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("file backend: close %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		cleanup()
		return fmt.Errorf("file backend: chmod %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		cleanup()
		return fmt.Errorf("file backend: rename %s: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (f *File) Close() error {
	return f.flk.Close()
}
