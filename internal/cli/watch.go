package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/lintspec/internal/logging"
	"github.com/yaklabco/lintspec/pkg/fsutil"
	"github.com/yaklabco/lintspec/pkg/runner"
)

// watchDebounce batches the bursts of events editors emit on save.
const watchDebounce = 200 * time.Millisecond

// watch lints every file once, then re-lints files whose content changes
// until the context is cancelled or the process is interrupted.
func (s *lintSession) watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger := logging.FromContext(ctx)

	files, err := runner.Discover(ctx, s.runOpts)
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	tracker := fsutil.NewTracker()
	for _, path := range files {
		if _, err := tracker.Changed(ctx, path); err != nil {
			return fmt.Errorf("track %s: %w", path, err)
		}
	}

	if err := s.lintFiles(ctx, files); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range s.watchDirs(files) {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("cannot watch directory", logging.FieldPath, dir, logging.FieldError, err)
		}
	}
	logger.Info("watching for changes", logging.FieldFiles, tracker.Len())

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			changed, err := s.changedFiles(ctx, tracker, pending)
			clear(pending)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn("re-discovery failed", logging.FieldError, err)
				continue
			}
			if len(changed) == 0 {
				continue
			}
			if err := s.lintFiles(ctx, changed); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// changedFiles filters pending event paths down to lintable files whose
// content differs from the last run. Discovery is repeated so that
// exclude patterns apply to files created while watching.
func (s *lintSession) changedFiles(
	ctx context.Context,
	tracker *fsutil.Tracker,
	pending map[string]struct{},
) ([]string, error) {
	files, err := runner.Discover(ctx, s.runOpts)
	if err != nil {
		return nil, err
	}

	var changed []string
	for _, path := range files {
		if _, ok := pending[path]; !ok {
			continue
		}
		isChanged, err := tracker.Changed(ctx, path)
		if err != nil {
			return nil, err
		}
		if isChanged {
			changed = append(changed, path)
		}
	}

	for path := range pending {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			tracker.Forget(path)
		}
	}

	return changed, nil
}

// lintFiles runs and reports one batch. Findings are printed but do not
// stop the watch loop.
func (s *lintSession) lintFiles(ctx context.Context, files []string) error {
	result, err := s.runner.RunFiles(ctx, files, s.runOpts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}
	return s.report(ctx, result)
}

// watchDirs returns the directories to watch: every lint root that is a
// directory plus the parent of every discovered file.
func (s *lintSession) watchDirs(files []string) []string {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	paths := s.runOpts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.runOpts.WorkingDir, path)
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			add(filepath.Clean(path))
		}
	}
	for _, file := range files {
		add(filepath.Dir(file))
	}
	return dirs
}
