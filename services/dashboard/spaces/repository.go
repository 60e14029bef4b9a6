// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package spaces reads the per-space directory tree and computes
// aggregated summaries.
//
// A space is one directory under the spaces root. It exists only if
// its metadata record (space.json) is present. All aggregate fields
// (task counts, doc count, last-updated) are recomputed from disk on
// every call; the repository holds no state between requests, so
// external writers are always observed immediately.
//
// Read failures degrade: a malformed metadata or task file yields an
// empty record, a missing subdirectory yields zero counts, and an
// unreadable spaces root yields an empty listing. The only errors the
// repository returns are for malformed caller input (bad slug, path
// escape) and for a space directory that does not exist.
package spaces

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AleutianAI/superbot-dashboard/pkg/fileutil"
	"github.com/AleutianAI/superbot-dashboard/pkg/validation"
)

const (
	// MetaFile is the metadata record that makes a directory a space.
	MetaFile = "space.json"

	// OverviewFile is the optional narrative overview of a space.
	OverviewFile = "OVERVIEW.md"

	// TasksDir holds one JSON file per task.
	TasksDir = "tasks"

	// DocsDir holds arbitrarily nested markdown documentation.
	DocsDir = "docs"

	// WatermarkFile is reserved for external incremental-scan
	// bookkeeping. Like every dotfile in the tasks directory it is
	// excluded from task enumeration.
	WatermarkFile = ".watermark.json"
)

// Repository reads spaces from a root directory. The zero value is
// not usable; construct with NewRepository.
//
// Repository is stateless and safe for concurrent use.
type Repository struct {
	root string
}

// NewRepository creates a repository over the given spaces root. The
// root does not need to exist yet; a missing root reads as zero
// spaces.
func NewRepository(root string) *Repository {
	return &Repository{root: root}
}

// Root returns the spaces root directory.
func (r *Repository) Root() string {
	return r.root
}

// ListSpaces enumerates every valid space with derived aggregates.
//
// A directory is a space only if it contains space.json. Results are
// in directory-enumeration order; callers sort as needed. An
// unreadable root yields an empty slice, never an error.
func (r *Repository) ListSpaces() []Summary {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		slog.Debug("spaces root unreadable", "root", r.root, "error", err)
		return []Summary{}
	}

	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		slug := entry.Name()
		dir := filepath.Join(r.root, slug)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, MetaFile)); err != nil {
			continue
		}
		summaries = append(summaries, r.summarize(slug))
	}
	return summaries
}

// GetSpace returns the full record and overview for one space.
//
// Returns ErrInvalidSlug for unsafe slugs and ErrSpaceNotFound when
// the space directory is absent. A present directory with a malformed
// or missing metadata record still succeeds, with empty metadata.
func (r *Repository) GetSpace(slug string) (*Detail, error) {
	if !validation.IsSafeSlug(slug) {
		return nil, ErrInvalidSlug
	}
	dir := filepath.Join(r.root, slug)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, ErrSpaceNotFound
	}

	return &Detail{
		Space:    r.summarize(slug),
		Overview: fileutil.ReadFileOr(filepath.Join(dir, OverviewFile)),
	}, nil
}

// ListTasks loads every task record of a space, ordered by ascending
// priority rank (critical, high, medium, low, unknown) and ascending
// id within equal priority. A missing task directory yields an empty
// list; a malformed task file degrades to an empty record rather than
// aborting the listing.
func (r *Repository) ListTasks(slug string) ([]Task, error) {
	if !validation.IsSafeSlug(slug) {
		return nil, ErrInvalidSlug
	}

	tasks := r.loadTasks(filepath.Join(r.root, slug, TasksDir))
	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := priorityRank(tasks[i].Priority), priorityRank(tasks[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

// ListDocs recursively enumerates the markdown files under a space's
// docs directory in traversal order.
func (r *Repository) ListDocs(slug string) ([]DocFile, error) {
	if !validation.IsSafeSlug(slug) {
		return nil, ErrInvalidSlug
	}

	docsRoot := filepath.Join(r.root, slug, DocsDir)
	docs := []DocFile{}
	filepath.WalkDir(docsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(docsRoot, path)
		if err != nil {
			return nil
		}
		docs = append(docs, DocFile{
			Name:         d.Name(),
			RelativePath: filepath.ToSlash(rel),
			Size:         info.Size(),
			Modified:     info.ModTime().UTC(),
		})
		return nil
	})
	return docs, nil
}

// ReadDoc returns the content of one documentation file.
//
// The relative path is rejected with ErrPathEscape if any segment is
// a parent-directory reference, and again if the resolved absolute
// path falls outside the space's docs directory after symlink
// evaluation. A path that passes both checks but names no file is not
// an error; it reads as exists=false.
func (r *Repository) ReadDoc(slug, relPath string) (fileutil.FileContent, error) {
	if !validation.IsSafeSlug(slug) {
		return fileutil.FileContent{}, ErrInvalidSlug
	}
	for _, segment := range strings.Split(filepath.ToSlash(relPath), "/") {
		if segment == ".." {
			return fileutil.FileContent{}, ErrPathEscape
		}
	}

	docsRoot := filepath.Join(r.root, slug, DocsDir)
	resolved := filepath.Clean(filepath.Join(docsRoot, relPath))
	if resolved != docsRoot && !strings.HasPrefix(resolved, docsRoot+string(filepath.Separator)) {
		return fileutil.FileContent{}, ErrPathEscape
	}

	// Symlinks inside docs/ could still point anywhere; compare the
	// fully evaluated paths before reading.
	if realPath, err := filepath.EvalSymlinks(resolved); err == nil {
		realRoot, err := filepath.EvalSymlinks(docsRoot)
		if err != nil {
			return fileutil.FileContent{}, nil
		}
		if realPath != realRoot && !strings.HasPrefix(realPath, realRoot+string(filepath.Separator)) {
			return fileutil.FileContent{}, ErrPathEscape
		}
	}

	return fileutil.ReadFileOr(resolved), nil
}

// summarize builds the Summary for one space directory. Never fails;
// every field degrades independently.
func (r *Repository) summarize(slug string) Summary {
	dir := filepath.Join(r.root, slug)

	var meta Meta
	fileutil.ReadJSONOr(filepath.Join(dir, MetaFile), &meta)
	meta.Slug = slug
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	if meta.TechStack == nil {
		meta.TechStack = []string{}
	}

	return Summary{
		Meta:        meta,
		TaskCounts:  countTasks(r.loadTasks(filepath.Join(dir, TasksDir))),
		DocCount:    countDocs(filepath.Join(dir, DocsDir)),
		LastUpdated: lastUpdated(dir),
	}
}

// loadTasks reads every task JSON file in dir, non-recursively,
// excluding the watermark file.
func (r *Repository) loadTasks(dir string) []Task {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []Task{}
	}

	tasks := make([]Task, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}
		var task Task
		fileutil.ReadJSONOr(filepath.Join(dir, name), &task)
		if task.Labels == nil {
			task.Labels = []string{}
		}
		if task.Blocks == nil {
			task.Blocks = []int{}
		}
		if task.BlockedBy == nil {
			task.BlockedBy = []int{}
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// countTasks tallies task records by status. Unrecognized statuses
// count toward Total only.
func countTasks(tasks []Task) TaskCounts {
	counts := TaskCounts{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case StatusPending:
			counts.Pending++
		case StatusInProgress:
			counts.InProgress++
		case StatusCompleted:
			counts.Completed++
		}
	}
	return counts
}

// countDocs recursively counts markdown files under root.
func countDocs(root string) int {
	count := 0
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
			count++
		}
		return nil
	})
	return count
}

// lastUpdated finds the most recent modification time of any file
// anywhere under dir, or nil when dir is empty or missing.
func lastUpdated(dir string) *time.Time {
	var latest time.Time
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if mod := info.ModTime(); mod.After(latest) {
			latest = mod
		}
		return nil
	})
	if latest.IsZero() {
		return nil
	}
	utc := latest.UTC()
	return &utc
}
