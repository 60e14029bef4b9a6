// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_RecordsActivity(t *testing.T) {
	root := t.TempDir()

	w, err := NewWatcher([]string{root}, nil)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	assert.Nil(t, w.LastActivity())

	require.NoError(t, os.WriteFile(filepath.Join(root, "note.md"), []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		return w.LastActivity() != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_PicksUpNewSubdirectories(t *testing.T) {
	root := t.TempDir()

	w, err := NewWatcher([]string{root}, nil)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	sub := filepath.Join(root, "spaces")
	require.NoError(t, os.Mkdir(sub, 0o755))

	require.Eventually(t, func() bool {
		return w.LastActivity() != nil
	}, 2*time.Second, 10*time.Millisecond)
	first := w.LastActivity()

	// Give the watcher a beat to register the new directory, then
	// write inside it.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "f.md"), []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		last := w.LastActivity()
		return last != nil && last.After(*first)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_MissingRootIsNotFatal(t *testing.T) {
	w, err := NewWatcher([]string{filepath.Join(t.TempDir(), "absent")}, nil)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, w.Start(ctx))
}

func TestLastActivity_NilWatcher(t *testing.T) {
	var w *Watcher
	assert.Nil(t, w.LastActivity())
}

func TestShouldIgnore(t *testing.T) {
	assert.True(t, shouldIgnore("/data/.watermark.json"))
	assert.True(t, shouldIgnore("/data/file.tmp"))
	assert.False(t, shouldIgnore("/data/space.json"))
}
