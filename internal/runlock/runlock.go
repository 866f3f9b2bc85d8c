// Package runlock serializes runs that target the same output directory.
// Two concurrent runs would race on output files and the report, so the
// lock is acquired before any processing and failure to take it is a fatal
// setup error.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock holds an acquired run lock.
type Lock struct {
	flock *flock.Flock
}

// Acquire takes a non-blocking exclusive lock on the given lock file path,
// creating parent directories as needed.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another run is already writing to this output directory (lock %s)", path)
	}
	return &Lock{flock: lock}, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}
