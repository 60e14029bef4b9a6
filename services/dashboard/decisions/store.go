// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package decisions manages per-space decision records: questions the
// automation poses that await human resolution.
//
// Each space owns one decisions.json array file under its directory.
// Disk is the sole source of truth; every operation re-reads the file,
// and writes are a full read-modify-write of the array. To keep id
// allocation correct under concurrent requests, each write holds an
// in-process mutex keyed by space slug across the read-modify-write
// span and persists through an atomic temp-file rename. That protects
// a single dashboard process; a second writer process would still
// race, which is accepted for this single-user local tool.
package decisions

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AleutianAI/superbot-dashboard/pkg/fileutil"
	"github.com/AleutianAI/superbot-dashboard/pkg/validation"
)

// DecisionsFile is the per-space array file holding decision records.
const DecisionsFile = "decisions.json"

// metaFile mirrors the space repository's existence test: a directory
// is a valid space only if this file is present.
const metaFile = "space.json"

// Store reads and writes decision files under a spaces root.
//
// Safe for concurrent use within one process.
type Store struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	// now is the clock, swappable in tests.
	now func() time.Time
}

// NewStore creates a store over the given spaces root.
func NewStore(root string) *Store {
	return &Store{
		root:  root,
		locks: make(map[string]*sync.Mutex),
		now:   time.Now,
	}
}

// ListSpace returns the decisions of one space, newest-file-order
// preserved, with the space identity attached to every record. An
// absent or malformed file reads as an empty list.
func (s *Store) ListSpace(slug string) ([]Decision, error) {
	if !validation.IsSafeSlug(slug) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpace, slug)
	}
	return s.attach(slug, s.load(slug)), nil
}

// ListAll aggregates decisions across every valid space, sorted by
// createdAt descending. The sort is a lexicographic string compare,
// which orders correctly for the ISO-8601 timestamps the store
// writes; records without createdAt sort last. The optional status
// and space filters are applied after sorting.
func (s *Store) ListAll(statusFilter, spaceFilter string) []Decision {
	all := []Decision{}
	for _, slug := range s.spaceSlugs() {
		all = append(all, s.attach(slug, s.load(slug))...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt > all[j].CreatedAt
	})

	if statusFilter == "" && spaceFilter == "" {
		return all
	}
	filtered := all[:0]
	for _, d := range all {
		if statusFilter != "" && d.Status != statusFilter {
			continue
		}
		if spaceFilter != "" && d.Space != spaceFilter {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}

// Create appends a new pending decision to the space's file.
//
// The space must pass slug validation and actually exist (metadata
// record present); the question must be non-empty. The id is one more
// than the maximum id in the file's current on-disk content, read
// fresh under the space's write lock, so two racing creates in this
// process cannot reuse an id.
func (s *Store) Create(req CreateRequest) (*Decision, error) {
	if !validation.IsSafeSlug(req.Space) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpace, req.Space)
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, ErrEmptyQuestion
	}
	if !s.spaceExists(req.Space) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpace, req.Space)
	}

	lock := s.lockFor(req.Space)
	lock.Lock()
	defer lock.Unlock()

	list := s.load(req.Space)

	maxID := 0
	for _, d := range list {
		if d.ID > maxID {
			maxID = d.ID
		}
	}

	answers := req.SuggestedAnswers
	if answers == nil {
		answers = []SuggestedAnswer{}
	}
	decision := Decision{
		ID:               maxID + 1,
		Question:         req.Question,
		Context:          req.Context,
		SuggestedAnswers: answers,
		Status:           StatusPending,
		Resolution:       nil,
		CreatedAt:        s.now().UTC().Format(time.RFC3339),
		ResolvedAt:       nil,
	}

	list = append(list, decision)
	if err := s.persist(req.Space, list); err != nil {
		return nil, err
	}

	slog.Info("decision created", "space", req.Space, "id", decision.ID)
	decision.Space = req.Space
	return &decision, nil
}

// Resolve applies status/resolution updates to one decision in the
// given space. ResolvedAt is stamped exactly when the new status is
// "resolved"; any other update leaves it untouched.
//
// The space is required: ids are only unique per space, so a
// cross-space search by id alone would be ambiguous by construction.
func (s *Store) Resolve(space string, id int, updates ResolveUpdates) (*Decision, error) {
	if !validation.IsSafeSlug(space) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpace, space)
	}
	if !s.spaceExists(space) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpace, space)
	}

	lock := s.lockFor(space)
	lock.Lock()
	defer lock.Unlock()

	list := s.load(space)
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if updates.Status != nil {
			list[i].Status = *updates.Status
			if *updates.Status == StatusResolved {
				stamp := s.now().UTC().Format(time.RFC3339)
				list[i].ResolvedAt = &stamp
			}
		}
		if updates.Resolution != nil {
			list[i].Resolution = updates.Resolution
		}
		if err := s.persist(space, list); err != nil {
			return nil, err
		}

		slog.Info("decision updated", "space", space, "id", id)
		resolved := list[i]
		resolved.Space = space
		return &resolved, nil
	}
	return nil, fmt.Errorf("%w: id %d in space %q", ErrNotFound, id, space)
}

// load reads a space's decision file, degrading to an empty list.
func (s *Store) load(slug string) []Decision {
	var list []Decision
	fileutil.ReadJSONOr(filepath.Join(s.root, slug, DecisionsFile), &list)
	if list == nil {
		list = []Decision{}
	}
	for i := range list {
		if list[i].SuggestedAnswers == nil {
			list[i].SuggestedAnswers = []SuggestedAnswer{}
		}
	}
	return list
}

// persist writes the full array back atomically. Records never carry
// the space field on disk.
func (s *Store) persist(slug string, list []Decision) error {
	for i := range list {
		list[i].Space = ""
	}
	path := filepath.Join(s.root, slug, DecisionsFile)
	if err := fileutil.WriteJSONAtomic(path, list); err != nil {
		return fmt.Errorf("persisting decisions for %q: %w", slug, err)
	}
	return nil
}

// attach stamps the owning space onto every record for the caller.
func (s *Store) attach(slug string, list []Decision) []Decision {
	for i := range list {
		list[i].Space = slug
	}
	return list
}

// spaceSlugs enumerates valid spaces, mirroring the space repository:
// a directory counts only if its metadata record is present.
func (s *Store) spaceSlugs() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		slug := entry.Name()
		if s.spaceExists(slug) {
			slugs = append(slugs, slug)
		}
	}
	return slugs
}

func (s *Store) spaceExists(slug string) bool {
	_, err := os.Stat(filepath.Join(s.root, slug, metaFile))
	return err == nil
}

// lockFor returns the mutex serializing writes for one space.
func (s *Store) lockFor(slug string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[slug]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[slug] = lock
	}
	return lock
}
