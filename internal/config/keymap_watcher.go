package config

import (
	"context"

	"github.com/dshills/quill/internal/config/watcher"
	"github.com/dshills/quill/internal/input/keymap"
)

// Reload carries the result of re-reading a binding file.
type Reload struct {
	Path  string
	Trees keymap.Trees
	Err   error
}

// KeymapWatcher rebuilds key trees when a binding file changes. Trees are
// built on the watcher goroutine and handed over on Reloads; the receiver
// installs them, so the parser is never touched concurrently.
type KeymapWatcher struct {
	path    string
	w       *watcher.Watcher
	reloads chan Reload
}

// NewKeymapWatcher watches path. Options are passed to the file watcher.
func NewKeymapWatcher(path string, opts ...watcher.Option) (*KeymapWatcher, error) {
	w, err := watcher.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &KeymapWatcher{
		path:    path,
		w:       w,
		reloads: make(chan Reload, 1),
	}, nil
}

// Reloads returns the channel of rebuilt trees.
func (kw *KeymapWatcher) Reloads() <-chan Reload {
	return kw.reloads
}

// Run delivers reloads until ctx is done, then closes the watcher and the
// Reloads channel. A removed file produces no reload; the current trees
// stay in place until it reappears.
func (kw *KeymapWatcher) Run(ctx context.Context) error {
	defer close(kw.reloads)
	defer kw.w.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-kw.w.Events():
			if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
				continue
			}
			trees, err := keymap.LoadTrees(kw.path)
			r := Reload{Path: kw.path, Trees: trees, Err: err}
			select {
			case kw.reloads <- r:
			case <-ctx.Done():
				return ctx.Err()
			}

		case err := <-kw.w.Errors():
			select {
			case kw.reloads <- Reload{Path: kw.path, Err: err}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Close stops the file watcher. A running Run returns once ctx is done.
func (kw *KeymapWatcher) Close() error {
	return kw.w.Close()
}
