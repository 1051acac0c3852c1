package fsutil

import (
	"context"
	"sync"
)

// Tracker remembers the last seen state of a set of files. Watch mode uses
// it to drop filesystem events that did not change any content.
type Tracker struct {
	mu    sync.Mutex
	files map[string]*FileInfo
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{files: make(map[string]*FileInfo)}
}

// Changed reports whether path differs from the last time it was
// recorded, and records its current state. Untracked files are always
// changed. A file that can no longer be read is forgotten and reported as
// changed so that its read error gets surfaced.
func (t *Tracker) Changed(ctx context.Context, path string) (bool, error) {
	t.mu.Lock()
	prev := t.files[path]
	t.mu.Unlock()

	if prev != nil {
		modified, err := CheckModified(ctx, prev)
		if err != nil {
			return false, err
		}
		if !modified {
			return false, nil
		}
	}

	_, info, err := ReadFile(ctx, path)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		delete(t.files, path)
		if ctx.Err() != nil {
			return false, err
		}
		return true, nil //nolint:nilerr // The lint run reports the read error.
	}
	t.files[path] = info
	return true, nil
}

// Forget drops path from the tracker.
func (t *Tracker) Forget(path string) {
	t.mu.Lock()
	delete(t.files, path)
	t.mu.Unlock()
}

// Len returns the number of tracked files.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.files)
}
