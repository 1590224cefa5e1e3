package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is the delay after an fsnotify event before reloading,
// so that a writer finishing a multi-write save triggers one reload.
const DebounceInterval = 100 * time.Millisecond

// Watcher reloads the store whenever the external layer rewrites the
// snapshot file. Readers holding an older snapshot are unaffected; the
// reload is one atomic Replace.
type Watcher struct {
	repo  *YAMLRepository
	store *Store
}

func NewWatcher(repo *YAMLRepository, store *Store) *Watcher {
	return &Watcher{
		repo:  repo,
		store: store,
	}
}

// Run watches until ctx is cancelled. The parent directory is watched
// rather than the file itself: editors and atomic writers replace the
// file, which would detach a file-level watch.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(w.repo.filePath)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	var debounce *time.Timer
	var debounceC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.repo.filePath) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(DebounceInterval)
				debounceC = debounce.C
			} else {
				debounce.Reset(DebounceInterval)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("snapshot watch error", "error", err)
		case <-debounceC:
			debounce = nil
			debounceC = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	snap, err := w.repo.Load()
	if err != nil {
		slog.Warn("failed to reload snapshot", "error", err)
		return
	}
	if err := w.store.Replace(snap); err != nil {
		slog.Warn("rejected reloaded snapshot", "error", err)
		return
	}
	slog.Info("snapshot reloaded",
		"tasks", len(snap.Tasks),
		"members", len(snap.Members),
		"notifications", len(snap.Notifications),
	)
}
