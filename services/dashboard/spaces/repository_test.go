// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package spaces

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mkSpace creates a space directory with the given metadata JSON.
func mkSpace(t *testing.T, root, slug, metaJSON string) string {
	t.Helper()
	dir := filepath.Join(root, slug)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetaFile), []byte(metaJSON), 0o644))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestListSpaces_MetadataRecordRequired(t *testing.T) {
	root := t.TempDir()
	mkSpace(t, root, "acme", `{"name":"Acme","slug":"acme"}`)

	// Directory without space.json is not a space.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scratch"), 0o755))
	// Stray file at the root is ignored.
	writeFile(t, filepath.Join(root, "README.md"), "not a space")

	got := NewRepository(root).ListSpaces()
	require.Len(t, got, 1)
	assert.Equal(t, "acme", got[0].Slug)
	assert.Equal(t, "Acme", got[0].Name)
}

func TestListSpaces_TaskCounts(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{"name":"Acme","slug":"acme"}`)
	writeFile(t, filepath.Join(dir, TasksDir, "1.json"), `{"id":1,"status":"pending","priority":"high"}`)
	writeFile(t, filepath.Join(dir, TasksDir, "2.json"), `{"id":2,"status":"completed","priority":"low"}`)

	got := NewRepository(root).ListSpaces()
	require.Len(t, got, 1)
	assert.Equal(t, TaskCounts{Pending: 1, InProgress: 0, Completed: 1, Total: 2}, got[0].TaskCounts)
}

func TestListSpaces_NoTaskDirectory(t *testing.T) {
	root := t.TempDir()
	mkSpace(t, root, "bare", `{"name":"Bare"}`)

	got := NewRepository(root).ListSpaces()
	require.Len(t, got, 1)
	assert.Equal(t, TaskCounts{}, got[0].TaskCounts)
}

func TestListSpaces_UnknownStatusCountsTowardTotalOnly(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{}`)
	writeFile(t, filepath.Join(dir, TasksDir, "1.json"), `{"id":1,"status":"blocked"}`)
	writeFile(t, filepath.Join(dir, TasksDir, "2.json"), `{"id":2}`)
	writeFile(t, filepath.Join(dir, TasksDir, "3.json"), `{"id":3,"status":"pending"}`)

	got := NewRepository(root).ListSpaces()
	require.Len(t, got, 1)
	assert.Equal(t, TaskCounts{Pending: 1, Total: 3}, got[0].TaskCounts)
}

func TestListSpaces_DotfilesExcluded(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{}`)
	writeFile(t, filepath.Join(dir, TasksDir, WatermarkFile), `{"lastScan":"2026-08-01T00:00:00Z"}`)
	writeFile(t, filepath.Join(dir, TasksDir, ".index.json"), `{"id":99}`)
	writeFile(t, filepath.Join(dir, TasksDir, "1.json"), `{"id":1,"status":"pending"}`)
	writeFile(t, filepath.Join(dir, TasksDir, "notes.txt"), "not a task")

	got := NewRepository(root).ListSpaces()
	require.Len(t, got, 1)
	assert.Equal(t, TaskCounts{Pending: 1, Total: 1}, got[0].TaskCounts)
}

func TestListSpaces_DocCountRecursive(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{}`)
	writeFile(t, filepath.Join(dir, DocsDir, "intro.md"), "# Intro")
	writeFile(t, filepath.Join(dir, DocsDir, "guides", "setup.md"), "# Setup")
	writeFile(t, filepath.Join(dir, DocsDir, "guides", "deep", "ops.md"), "# Ops")
	writeFile(t, filepath.Join(dir, DocsDir, "image.png"), "binary")

	repo := NewRepository(root)
	got := repo.ListSpaces()
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].DocCount)

	// docCount matches the doc listing.
	docs, err := repo.ListDocs("acme")
	require.NoError(t, err)
	assert.Len(t, docs, got[0].DocCount)
}

func TestListSpaces_LastUpdated(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{}`)
	writeFile(t, filepath.Join(dir, DocsDir, "a.md"), "x")

	got := NewRepository(root).ListSpaces()
	require.Len(t, got, 1)
	require.NotNil(t, got[0].LastUpdated)
	assert.False(t, got[0].LastUpdated.IsZero())
}

func TestListSpaces_MalformedMetadataDegrades(t *testing.T) {
	root := t.TempDir()
	mkSpace(t, root, "broken", `{not json at all`)

	got := NewRepository(root).ListSpaces()
	require.Len(t, got, 1)
	assert.Equal(t, "broken", got[0].Slug)
	assert.Empty(t, got[0].Name)
	assert.NotNil(t, got[0].Tags)
}

func TestListSpaces_MissingRoot(t *testing.T) {
	got := NewRepository(filepath.Join(t.TempDir(), "nope")).ListSpaces()
	assert.Empty(t, got)
}

func TestGetSpace(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{"name":"Acme","description":"widgets"}`)
	writeFile(t, filepath.Join(dir, OverviewFile), "# Acme\nThe widget space.")

	detail, err := NewRepository(root).GetSpace("acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", detail.Space.Name)
	assert.Equal(t, "acme", detail.Space.Slug)
	assert.True(t, detail.Overview.Exists)
	assert.Contains(t, detail.Overview.Content, "widget space")
}

func TestGetSpace_NoOverview(t *testing.T) {
	root := t.TempDir()
	mkSpace(t, root, "acme", `{}`)

	detail, err := NewRepository(root).GetSpace("acme")
	require.NoError(t, err)
	assert.False(t, detail.Overview.Exists)
	assert.Empty(t, detail.Overview.Content)
}

func TestGetSpace_NotFound(t *testing.T) {
	_, err := NewRepository(t.TempDir()).GetSpace("beta")
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestGetSpace_InvalidSlug(t *testing.T) {
	repo := NewRepository(t.TempDir())
	for _, slug := range []string{"a b", "../etc", "a/b", ""} {
		_, err := repo.GetSpace(slug)
		assert.ErrorIs(t, err, ErrInvalidSlug, "slug %q", slug)
	}
}

func TestListTasks_SortOrder(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{}`)
	writeFile(t, filepath.Join(dir, TasksDir, "a.json"), `{"id":7,"priority":"low"}`)
	writeFile(t, filepath.Join(dir, TasksDir, "b.json"), `{"id":2,"priority":"critical"}`)
	writeFile(t, filepath.Join(dir, TasksDir, "c.json"), `{"id":9,"priority":"high"}`)
	writeFile(t, filepath.Join(dir, TasksDir, "d.json"), `{"id":3,"priority":"high"}`)
	writeFile(t, filepath.Join(dir, TasksDir, "e.json"), `{"id":1,"priority":"urgent"}`) // unknown priority sorts last
	writeFile(t, filepath.Join(dir, TasksDir, "f.json"), `{"priority":"high"}`)          // missing id sorts as 0

	tasks, err := NewRepository(root).ListTasks("acme")
	require.NoError(t, err)

	ids := make([]int, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	assert.Equal(t, []int{2, 0, 3, 9, 7, 1}, ids)
}

func TestListTasks_MalformedFileDegrades(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{}`)
	writeFile(t, filepath.Join(dir, TasksDir, "1.json"), `{"id":1,"status":"pending"}`)
	writeFile(t, filepath.Join(dir, TasksDir, "2.json"), `garbage{{`)

	tasks, err := NewRepository(root).ListTasks("acme")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	// The malformed record reads as an empty task, not an error, and
	// its zero id sorts it ahead of the valid record.
	assert.Equal(t, 0, tasks[0].ID)
	assert.NotNil(t, tasks[0].Labels)
	assert.Equal(t, 1, tasks[1].ID)
}

func TestListTasks_NoDirectory(t *testing.T) {
	root := t.TempDir()
	mkSpace(t, root, "acme", `{}`)

	tasks, err := NewRepository(root).ListTasks("acme")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListDocs_RelativePaths(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{}`)
	writeFile(t, filepath.Join(dir, DocsDir, "guides", "setup.md"), "# Setup")

	docs, err := NewRepository(root).ListDocs("acme")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "setup.md", docs[0].Name)
	assert.Equal(t, "guides/setup.md", docs[0].RelativePath)
	assert.Equal(t, int64(len("# Setup")), docs[0].Size)
}

func TestReadDoc(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{}`)
	writeFile(t, filepath.Join(dir, DocsDir, "guides", "setup.md"), "# Setup")

	repo := NewRepository(root)

	content, err := repo.ReadDoc("acme", "guides/setup.md")
	require.NoError(t, err)
	assert.True(t, content.Exists)
	assert.Equal(t, "# Setup", content.Content)

	// Idempotent: same content on a second read with no writes.
	again, err := repo.ReadDoc("acme", "guides/setup.md")
	require.NoError(t, err)
	assert.Equal(t, content, again)
}

func TestReadDoc_MissingFileIsNotAnError(t *testing.T) {
	root := t.TempDir()
	mkSpace(t, root, "acme", `{}`)

	content, err := NewRepository(root).ReadDoc("acme", "absent.md")
	require.NoError(t, err)
	assert.False(t, content.Exists)
}

func TestReadDoc_PathEscapeRejected(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{}`)
	writeFile(t, filepath.Join(dir, DocsDir, "ok.md"), "ok")
	// A real file outside the docs root that escapes must never reach.
	writeFile(t, filepath.Join(dir, "secret.md"), "secret")

	repo := NewRepository(root)
	for _, path := range []string{
		"../../etc/passwd",
		"a/../../b",
		"../secret.md",
		"..",
	} {
		_, err := repo.ReadDoc("acme", path)
		assert.ErrorIs(t, err, ErrPathEscape, "path %q", path)
	}
}

func TestReadDoc_SymlinkEscapeRejected(t *testing.T) {
	root := t.TempDir()
	dir := mkSpace(t, root, "acme", `{}`)
	writeFile(t, filepath.Join(dir, DocsDir, "ok.md"), "ok")

	outside := filepath.Join(t.TempDir(), "outside.md")
	writeFile(t, outside, "outside")
	link := filepath.Join(dir, DocsDir, "link.md")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, err := NewRepository(root).ReadDoc("acme", "link.md")
	assert.ErrorIs(t, err, ErrPathEscape)
}
