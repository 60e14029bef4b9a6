// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package system reads the superbot operational files outside the
// spaces tree: context markdown, daily notes, sessions, the team
// inboxes, prompts, logs, the redacted config, and the aggregate
// status. Everything here is read-only and best-effort; the
// degraded-read policy matches the spaces repository.
package system

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/AleutianAI/superbot-dashboard/pkg/fileutil"
	"github.com/AleutianAI/superbot-dashboard/pkg/validation"
)

// Context file names served as-is from the superbot directory.
var ContextFiles = []string{"IDENTITY.md", "USER.md", "MEMORY.md", "HEARTBEAT.md", "ONBOARD.md"}

// pendingCheckboxPattern counts unchecked task lines in HEARTBEAT.md.
var pendingCheckboxPattern = regexp.MustCompile(`(?m)^- \[ \]`)

// Service reads operational files from the superbot directories.
// Stateless; safe for concurrent use.
type Service struct {
	superbotDir string
	teamDir     string
	skillsDir   string
	tasksDir    string
	allowedLogs []string
}

// Options configure a Service.
type Options struct {
	// SuperbotDir is the root data directory (~/.superbot).
	SuperbotDir string
	// TeamDir holds the team config and inboxes.
	TeamDir string
	// SkillsDir holds installed skill directories or symlinks.
	SkillsDir string
	// TasksDir holds the global task groups, one subdirectory per
	// group. Distinct from the per-space tasks directories.
	TasksDir string
	// AllowedLogs is the allowlist of servable log file names.
	AllowedLogs []string
}

// NewService creates a system reader over the given directories.
func NewService(opts Options) *Service {
	return &Service{
		superbotDir: opts.SuperbotDir,
		teamDir:     opts.TeamDir,
		skillsDir:   opts.SkillsDir,
		tasksDir:    opts.TasksDir,
		allowedLogs: opts.AllowedLogs,
	}
}

// ContextFile returns one of the superbot context markdown files.
func (s *Service) ContextFile(name string) fileutil.FileContent {
	return fileutil.ReadFileOr(filepath.Join(s.superbotDir, name))
}

// DailyNote is one markdown note in the daily directory; the date is
// the filename without extension.
type DailyNote struct {
	Date     string `json:"date"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// DailyNotes lists the daily markdown notes, newest first.
func (s *Service) DailyNotes() []DailyNote {
	dir := filepath.Join(s.superbotDir, "daily")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []DailyNote{}
	}

	notes := []DailyNote{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		notes = append(notes, DailyNote{
			Date:     strings.TrimSuffix(name, ".md"),
			Filename: name,
			Size:     size,
		})
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Date > notes[j].Date })
	return notes
}

// DailyNote returns the note for a date. The date parameter is
// sanitized to digits and hyphens before touching the filesystem.
func (s *Service) DailyNote(date string) fileutil.FileContent {
	clean := validation.SanitizeDate(date)
	if clean == "" {
		return fileutil.FileContent{}
	}
	return fileutil.ReadFileOr(filepath.Join(s.superbotDir, "daily", clean+".md"))
}

// SlackThread identifies the Slack conversation a session reports to.
type SlackThread struct {
	Channel  string `json:"channel"`
	ThreadTs string `json:"threadTs"`
}

// Session is one entry in sessions.json.
type Session struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Status      string       `json:"status"`
	Space       string       `json:"space,omitempty"`
	SlackThread *SlackThread `json:"slackThread,omitempty"`
	CreatedAt   string       `json:"createdAt"`
}

// Sessions returns the recorded agent sessions, empty on any failure.
func (s *Service) Sessions() []Session {
	var file struct {
		Sessions []Session `json:"sessions"`
	}
	fileutil.ReadJSONOr(filepath.Join(s.superbotDir, "sessions.json"), &file)
	if file.Sessions == nil {
		file.Sessions = []Session{}
	}
	return file.Sessions
}

// Team returns the raw team configuration. The shape is owned by the
// team tooling, so it passes through undecoded.
func (s *Service) Team() map[string]any {
	team := map[string]any{}
	if !fileutil.ReadJSONOr(filepath.Join(s.teamDir, "config.json"), &team) {
		return map[string]any{"members": []any{}}
	}
	return team
}

// InboxSummary is the per-inbox message tally.
type InboxSummary struct {
	Name   string `json:"name"`
	Total  int    `json:"total"`
	Unread int    `json:"unread"`
}

// InboxMessage is one message in an inbox file.
type InboxMessage struct {
	From      string `json:"from"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
	Read      bool   `json:"read"`
}

// Inboxes summarizes every inbox file under the team directory.
func (s *Service) Inboxes() []InboxSummary {
	dir := filepath.Join(s.teamDir, "inboxes")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []InboxSummary{}
	}

	inboxes := []InboxSummary{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		messages := s.readInbox(filepath.Join(dir, name))
		unread := 0
		for _, m := range messages {
			if !m.Read {
				unread++
			}
		}
		inboxes = append(inboxes, InboxSummary{
			Name:   strings.TrimSuffix(name, ".json"),
			Total:  len(messages),
			Unread: unread,
		})
	}
	return inboxes
}

// Inbox returns the messages of one inbox. The name is sanitized to
// safe characters first; a sanitized-away name reads as empty.
func (s *Service) Inbox(name string) (string, []InboxMessage) {
	clean := validation.SanitizeName(name)
	if clean == "" {
		return clean, []InboxMessage{}
	}
	return clean, s.readInbox(filepath.Join(s.teamDir, "inboxes", clean+".json"))
}

func (s *Service) readInbox(path string) []InboxMessage {
	var messages []InboxMessage
	fileutil.ReadJSONOr(path, &messages)
	if messages == nil {
		messages = []InboxMessage{}
	}
	return messages
}

// Skill is one installed skill: a directory or a symlink to one.
type Skill struct {
	Name      string  `json:"name"`
	IsSymlink bool    `json:"isSymlink"`
	Target    *string `json:"target"`
}

// Skills lists the installed skills with symlink targets resolved.
func (s *Service) Skills() []Skill {
	entries, err := os.ReadDir(s.skillsDir)
	if err != nil {
		return []Skill{}
	}

	skills := []Skill{}
	for _, entry := range entries {
		if !entry.IsDir() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		skill := Skill{Name: entry.Name()}
		full := filepath.Join(s.skillsDir, entry.Name())
		if info, err := os.Lstat(full); err == nil && info.Mode()&os.ModeSymlink != 0 {
			skill.IsSymlink = true
			if target, err := os.Readlink(full); err == nil {
				skill.Target = &target
			}
		}
		skills = append(skills, skill)
	}
	return skills
}

// TaskGroup is one subdirectory of the global tasks directory with its
// task records. Records pass through undecoded; their shape is owned
// by the task tooling.
type TaskGroup struct {
	Name  string           `json:"name"`
	Tasks []map[string]any `json:"tasks"`
}

// TaskGroups lists the global task groups. A missing directory or an
// unreadable record reads as empty, never as an error.
func (s *Service) TaskGroups() []TaskGroup {
	entries, err := os.ReadDir(s.tasksDir)
	if err != nil {
		return []TaskGroup{}
	}

	groups := []TaskGroup{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		groupDir := filepath.Join(s.tasksDir, entry.Name())
		files, err := os.ReadDir(groupDir)
		if err != nil {
			continue
		}
		tasks := []map[string]any{}
		for _, file := range files {
			name := file.Name()
			if file.IsDir() || !strings.HasSuffix(name, ".json") {
				continue
			}
			task := map[string]any{}
			fileutil.ReadJSONOr(filepath.Join(groupDir, name), &task)
			if task == nil {
				task = map[string]any{}
			}
			tasks = append(tasks, task)
		}
		groups = append(groups, TaskGroup{Name: entry.Name(), Tasks: tasks})
	}
	return groups
}

// ConfigRedacted returns config.json with credentials masked.
func (s *Service) ConfigRedacted() any {
	var config any
	if !fileutil.ReadJSONOr(filepath.Join(s.superbotDir, "config.json"), &config) {
		return map[string]any{}
	}
	return Redact(config)
}

// ScheduleInfo pairs the configured schedule with the last-run record.
type ScheduleInfo struct {
	Schedule []any `json:"schedule"`
	LastRun  any   `json:"lastRun"`
}

// Schedule reads the schedule entries from config.json and the
// scheduler's last-run marker. The scheduler itself is an external
// daemon; this is inspection only.
func (s *Service) Schedule() ScheduleInfo {
	var config struct {
		Schedule []any `json:"schedule"`
	}
	fileutil.ReadJSONOr(filepath.Join(s.superbotDir, "config.json"), &config)
	if config.Schedule == nil {
		config.Schedule = []any{}
	}

	var lastRun any
	fileutil.ReadJSONOr(filepath.Join(s.superbotDir, "schedule-last-run.json"), &lastRun)
	return ScheduleInfo{Schedule: config.Schedule, LastRun: lastRun}
}

// PromptSummary describes one prompt file without its content.
type PromptSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
	Size   int64  `json:"size"`
	Lines  int    `json:"lines"`
}

// PromptDetail is one prompt with content.
type PromptDetail struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Exists  bool   `json:"exists"`
}

// Prompts lists the markdown prompt files under the prompts directory.
func (s *Service) Prompts() []PromptSummary {
	dir := filepath.Join(s.superbotDir, "prompts")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []PromptSummary{}
	}

	prompts := []PromptSummary{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		prompts = append(prompts, PromptSummary{
			ID:     strings.TrimSuffix(name, ".md"),
			Name:   name,
			Exists: true,
			Size:   size,
			Lines:  fileutil.CountLines(filepath.Join(dir, name)),
		})
	}
	return prompts
}

// Prompt returns one prompt by id.
func (s *Service) Prompt(id string) PromptDetail {
	clean := validation.SanitizeName(id)
	if clean == "" {
		return PromptDetail{ID: id}
	}
	content := fileutil.ReadFileOr(filepath.Join(s.superbotDir, "prompts", clean+".md"))
	return PromptDetail{ID: clean, Content: content.Content, Exists: content.Exists}
}

// FileCheck reports presence and size of one context file.
type FileCheck struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
	Lines  int    `json:"lines"`
}

// Status is the aggregate health snapshot for the status view.
type Status struct {
	FileChecks     []FileCheck `json:"fileChecks"`
	DailyCount     int         `json:"dailyCount"`
	ActiveSessions int         `json:"activeSessions"`
	TotalSessions  int         `json:"totalSessions"`
	PendingTasks   int         `json:"pendingTasks"`
	TotalUnread    int         `json:"totalUnread"`
	LastActivity   *time.Time  `json:"lastActivity"`
	Timestamp      time.Time   `json:"timestamp"`
}

// BuildStatus assembles the aggregate status. lastActivity comes from
// the filesystem watcher and is nil when no event has been seen yet.
func (s *Service) BuildStatus(lastActivity *time.Time) Status {
	checks := make([]FileCheck, 0, len(ContextFiles))
	for _, name := range ContextFiles {
		path := filepath.Join(s.superbotDir, name)
		check := FileCheck{Name: name}
		if _, err := os.Stat(path); err == nil {
			check.Exists = true
			check.Lines = fileutil.CountLines(path)
		}
		checks = append(checks, check)
	}

	sessions := s.Sessions()
	active := 0
	for _, session := range sessions {
		if session.Status == "active" {
			active++
		}
	}

	heartbeat := s.ContextFile("HEARTBEAT.md")
	pending := len(pendingCheckboxPattern.FindAllString(heartbeat.Content, -1))

	unread := 0
	for _, inbox := range s.Inboxes() {
		unread += inbox.Unread
	}

	return Status{
		FileChecks:     checks,
		DailyCount:     len(s.DailyNotes()),
		ActiveSessions: active,
		TotalSessions:  len(sessions),
		PendingTasks:   pending,
		TotalUnread:    unread,
		LastActivity:   lastActivity,
		Timestamp:      time.Now().UTC(),
	}
}
