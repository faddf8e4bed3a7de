package box2d

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const b2SettingsDebounce = 100 * time.Millisecond

/// Watches one settings file and delivers every successfully parsed revision
/// on Updates. Parse and watch failures go to Errors. Apply updates with
/// B2World.SetSettings between steps, never from the watcher goroutine.
type B2SettingsWatcher struct {
	watcher *fsnotify.Watcher
	path    string

	Updates chan B2Settings
	Errors  chan error

	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

func NewB2SettingsWatcher(path string) (*B2SettingsWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Editors replace files on save, so the directory is watched rather
	// than the file itself.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	sw := &B2SettingsWatcher{
		watcher: w,
		path:    abs,
		Updates: make(chan B2Settings, 4),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go sw.run()
	return sw, nil
}

func (w *B2SettingsWatcher) Path() string {
	return w.path
}

func (w *B2SettingsWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *B2SettingsWatcher) run() {
	defer close(w.doneCh)

	// A burst of events for one save is collapsed into a single reload
	// fired after the file has been quiet for b2SettingsDebounce.
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(b2SettingsDebounce)
		case <-timer.C:
			settings, err := LoadB2Settings(w.path)
			if err != nil {
				b2Logf("settings reload failed: %v", err)
				w.sendError(err)
				continue
			}
			select {
			case w.Updates <- settings:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *B2SettingsWatcher) sendError(err error) {
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	}
}
