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
	"time"

	"github.com/AleutianAI/superbot-dashboard/pkg/fileutil"
)

// Task status values recognized by the count buckets. Anything else
// still counts toward Total.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// URLs holds the optional external links of a space.
type URLs struct {
	Production *string `json:"production"`
	Repo       *string `json:"repo"`
}

// Meta is the author-supplied metadata record of a space, stored in
// the space's space.json file. Malformed records degrade to the zero
// value; the Slug field is always overwritten with the directory name,
// since the directory is the identity.
type Meta struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	CodeDir     *string  `json:"codeDir"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	TechStack   []string `json:"techStack"`
	URLs        URLs     `json:"urls"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// TaskCounts are per-status task tallies, recomputed on every read.
type TaskCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
}

// Summary is one space with its derived aggregate fields attached.
// The derived fields are never persisted.
type Summary struct {
	Meta
	TaskCounts  TaskCounts `json:"taskCounts"`
	DocCount    int        `json:"docCount"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// Detail is the full record for one space plus its narrative overview.
type Detail struct {
	Space    Summary              `json:"space"`
	Overview fileutil.FileContent `json:"overview"`
}

// Task is one JSON record in a space's tasks directory. Ids are
// author-assigned and unique per space by convention; the repository
// does not validate uniqueness.
type Task struct {
	ID          int      `json:"id"`
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Labels      []string `json:"labels"`
	Blocks      []int    `json:"blocks"`
	BlockedBy   []int    `json:"blockedBy"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	CompletedAt *string  `json:"completedAt"`
}

// DocFile describes one markdown file under a space's docs directory.
type DocFile struct {
	Name         string    `json:"name"`
	RelativePath string    `json:"relativePath"`
	Size         int64     `json:"size"`
	Modified     time.Time `json:"modified"`
}

// priorityRank orders tasks for listing: critical first, unknown last.
func priorityRank(priority string) int {
	switch priority {
	case "critical":
		return 0
	case "high":
		return 1
	case "medium":
		return 2
	case "low":
		return 3
	default:
		return 4
	}
}
