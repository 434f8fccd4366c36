package repository

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/jonesrussell/govidsearch/internal/logger"
)

// Watch invokes onChange whenever the sites file is rewritten outside the
// process, so manual edits show up without a restart. The parent directory
// is watched because editors and our own atomic save replace the file by
// rename. Watch blocks until ctx is done.
func (s *SiteStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Info("Sites file changed, reloading",
				logger.String("path", s.path),
				logger.String("op", event.Op.String()),
			)
			onChange()

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Sites file watcher error",
				logger.Error(watchErr),
			)
		}
	}
}
