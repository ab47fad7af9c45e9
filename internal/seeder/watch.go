package seeder

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 250 * time.Millisecond

// Watch reloads the question set whenever the seed file changes, until ctx
// is cancelled. The parent directory is watched so that atomic
// rename-into-place saves are seen. A file that fails to parse is logged
// and the stored questions are kept.
func (s *Seeder) Watch(ctx context.Context, debounce time.Duration) error {
	if s.path == "" {
		return errors.New("seed watch requires a seed file")
	}
	target, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("resolve seed path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	s.logger.InfoContext(ctx, "watching seed file", "path", target)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

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
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.WarnContext(ctx, "seed watcher error", "error", err)

		case <-timer.C:
			if err := s.ReloadQuestions(ctx); err != nil {
				s.logger.ErrorContext(ctx, "failed to reload seed file", "error", err)
			}
		}
	}
}
