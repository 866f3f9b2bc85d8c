package runlock

import (
	"path/filepath"
	"testing"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".wavextract", "run.lock")

	lock, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}

	// Released locks can be taken again.
	again, err := Acquire(path)
	if err != nil {
		t.Fatalf("second Acquire returned error: %v", err)
	}
	_ = again.Release()
}

func TestReleaseNilIsSafe(t *testing.T) {
	var lock *Lock
	if err := lock.Release(); err != nil {
		t.Fatalf("nil Release returned error: %v", err)
	}
}
