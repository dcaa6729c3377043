package lut

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// Watch rescans the catalog whenever a file is created, removed, renamed,
// or written under an existing search root, until ctx is cancelled. Only
// the roots themselves are watched; edits deep inside subfolders are picked
// up on the next explicit rescan. onChange, when non-nil, runs after every
// successful rescan.
func (r *Registry) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create lut watcher")
	}
	defer w.Close()

	watched := 0
	for _, root := range r.Roots() {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		if err := w.Add(root); err == nil {
			watched++
		}
	}
	if watched == 0 {
		return errors.New("no existing LUT roots to watch")
	}

	const relevant = fsnotify.Create | fsnotify.Remove | fsnotify.Rename | fsnotify.Write

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&relevant == 0 {
				continue
			}
			if err := r.Rescan(); err != nil {
				continue
			}
			if onChange != nil {
				onChange()
			}
		case _, ok := <-w.Errors:
			if !ok {
				return nil
			}
		}
	}
}
