// Package watch reports source files under a directory as they are written.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/dshills/logsweep/internal/batch"
)

// Event is a change to a file that matches the include patterns.
type Event struct {
	Path string // absolute
	Rel  string // slash-separated, relative to the watched root
	Op   fsnotify.Op
}

// Watcher monitors a directory tree using OS-level notifications.
type Watcher struct {
	fsw     *fsnotify.Watcher
	root    string
	include []string
	exclude []string
	log     *zap.Logger
	dirs    []string

	Events chan Event
}

// New creates a Watcher on every directory under root that is not excluded.
// Directories created later are added as they appear.
func New(root string, include, exclude []string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("watch.New: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch.New: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		root:    abs,
		include: include,
		exclude: exclude,
		log:     logger,
		Events:  make(chan Event, 256),
	}
	if err := w.addTree(abs); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch.New: %w", err)
	}
	return w, nil
}

// Run forwards write and create events until ctx is cancelled, then closes Events.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.Events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.log.Warn("cannot watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
					continue
				}
			}
			rel, err := filepath.Rel(w.root, ev.Name)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if !batch.Included(rel, w.include, w.exclude) {
				continue
			}
			select {
			case w.Events <- Event{Path: ev.Name, Rel: rel, Op: ev.Op}:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// Dirs returns the directories being watched.
func (w *Watcher) Dirs() []string {
	return w.dirs
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.root, p)
		if err != nil {
			return err
		}
		// A directory is skipped when anything inside it would be excluded.
		if rel != "." && batch.Excluded(path.Join(filepath.ToSlash(rel), "_"), w.exclude) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			w.log.Warn("cannot watch directory", zap.String("dir", p), zap.Error(err))
			return nil
		}
		w.dirs = append(w.dirs, p)
		return nil
	})
}
