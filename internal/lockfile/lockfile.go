// Package lockfile implements the advisory .renamify/.lock used to
// serialize concurrent operations on one workspace (spec.md §5). Apply
// and undo/redo acquire it; the plan and init commands write under
// .renamify without taking it.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/renamify-go/renamify/internal/rnerrors"
)

// Lock wraps an advisory file lock on .renamify/.lock.
type Lock struct {
	fl *flock.Flock
}

// Acquire tries to take the lock in renamifyDir non-blockingly. If another
// process already owns it, it returns a *rnerrors.LockHeldError.
func Acquire(renamifyDir string) (*Lock, error) {
	if err := os.MkdirAll(renamifyDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", renamifyDir, err)
	}
	path := filepath.Join(renamifyDir, ".lock")
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, &rnerrors.LockHeldError{LockPath: path, Err: err}
	}
	if !ok {
		return nil, &rnerrors.LockHeldError{LockPath: path, Err: fmt.Errorf("lock busy")}
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock. It is safe to call on a nil *Lock or to call
// multiple times; every exit path (including panics, via defer) should call
// it.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
