// Copyright 2024 The allocator Authors. All rights reserved.

package discovery

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Watcher notifies a caller when a driver configuration directory
// changes, so a long-running process can pick up drivers installed
// after it started without restarting. It operates on the real
// filesystem directly (fsnotify has no afero equivalent), independent
// of the fs variable ScanDir/ScanDirs use.
type Watcher struct {
	inner *fsnotify.Watcher
	dirs  []string
}

// Watch begins watching dirs for created, written or removed *.json
// files. Non-existent directories are skipped rather than failing the
// whole call, matching ScanDir's tolerance for unconfigured locations.
func Watch(dirs []string) (*Watcher, error) {
	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "discovery: create watcher")
	}

	w := &Watcher{inner: inner}
	for _, dir := range dirs {
		if err := inner.Add(dir); err != nil {
			logrus.Printf("discovery: not watching %s: %v", dir, err)
			continue
		}
		w.dirs = append(w.dirs, dir)
	}
	return w, nil
}

// Events returns a channel of directory paths that changed and should
// be re-scanned with ScanDir. The channel is closed when Close is
// called; fsnotify errors are logged and otherwise ignored, since a
// single bad event should never stop the whole watch.
func (w *Watcher) Events() <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for {
			select {
			case ev, ok := <-w.inner.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(ev.Name, ".json") {
					continue
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				out <- filepath.Dir(ev.Name)
			case err, ok := <-w.inner.Errors:
				if !ok {
					return
				}
				logrus.Printf("discovery: watch error: %v", err)
			}
		}
	}()
	return out
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.inner.Close()
}
