// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package watch tracks filesystem activity under the superbot data
// directories. The status endpoint reports the time of the most
// recent change so the dashboard can show whether the bot is alive.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher records the timestamp of the latest change under a set of
// root directories.
//
// # Thread Safety
//
// Safe for concurrent use. LastActivity may be called from any
// goroutine while Start's event loop is running.
type Watcher struct {
	roots   []string
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	done     chan struct{}
	stopOnce sync.Once

	mu           sync.RWMutex
	lastActivity *time.Time
}

// NewWatcher creates a watcher over the given root directories. Roots
// that do not exist yet are skipped; a directory created later under
// a watched root is picked up automatically.
func NewWatcher(roots []string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		roots:   roots,
		watcher: fsw,
		logger:  logger,
		done:    make(chan struct{}),
	}, nil
}

// Start registers the roots and runs the event loop until the context
// is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	for _, root := range w.roots {
		if err := w.addRecursive(root); err != nil {
			w.logger.Warn("watch root unavailable", "root", root, "error", err)
		}
	}

	go w.run(ctx)
	return nil
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

// LastActivity returns the time of the most recent observed change,
// or nil when no change has been seen since startup. A nil receiver
// reports no activity, so callers holding the interface need not
// distinguish an absent watcher from an idle one.
func (w *Watcher) LastActivity() *time.Time {
	if w == nil {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.lastActivity == nil {
		return nil
	}
	t := *w.lastActivity
	return &t
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if shouldIgnore(event.Name) {
				continue
			}
			w.record(time.Now().UTC())

			// New subdirectories join the watch set.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) record(t time.Time) {
	w.mu.Lock()
	w.lastActivity = &t
	w.mu.Unlock()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		// The root itself may be a dotdir (~/.superbot); only prune
		// hidden entries below it.
		if path != root && shouldIgnore(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// shouldIgnore filters out hidden files and editor/atomic-write temp
// files so a rename-in-place write counts once, not twice.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") && base != "." {
		return true
	}
	return strings.HasSuffix(base, ".tmp") || strings.HasSuffix(base, ".swp")
}
