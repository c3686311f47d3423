// Package reload watches the configuration file and signals changes so
// the engine heuristics can be swapped without a restart.
package reload

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces the bursts of events editors emit on save.
const debounce = 200 * time.Millisecond

// Watch observes the config file at path until ctx is cancelled and
// calls onChange after each (debounced) modification. The parent
// directory is watched rather than the file itself, because most
// editors replace the file on save and break a direct watch.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}
	base := filepath.Base(path)

	logger.Info("config watcher: started", slog.String("path", path))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("config watcher: stopped")
			return nil

		case <-timerCh:
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				logger.Debug("config watcher: change detected", slog.String("op", ev.Op.String()))
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("config watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
