// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AleutianAI/superbot-dashboard/pkg/fileutil"
)

// ErrLogNotAllowed indicates a log name outside the allowlist. Log
// names are never joined into a path unless they pass the allowlist,
// so this doubles as traversal protection.
var ErrLogNotAllowed = errors.New("log file not allowed")

// Tail sizes for the listing and detail views.
const (
	logListTailLines   = 50
	logDetailTailLines = 100
)

// LogInfo is one allowlisted log with its recent tail.
type LogInfo struct {
	Name     string    `json:"name"`
	Exists   bool      `json:"exists"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Lines    string    `json:"lines"`
}

// Logs returns every allowlisted log that exists, each with its last
// 50 lines attached.
func (s *Service) Logs() []LogInfo {
	logs := []LogInfo{}
	for _, name := range s.allowedLogs {
		info, err := s.logInfo(name, logListTailLines)
		if err != nil || !info.Exists {
			continue
		}
		logs = append(logs, info)
	}
	return logs
}

// LogTail returns one log with its last 100 lines. Names outside the
// allowlist are rejected with ErrLogNotAllowed.
func (s *Service) LogTail(name string) (LogInfo, error) {
	return s.logInfo(name, logDetailTailLines)
}

// LogPath resolves the on-disk path of an allowlisted log, for the
// streaming endpoint.
func (s *Service) LogPath(name string) (string, error) {
	if !s.logAllowed(name) {
		return "", fmt.Errorf("%w: %q", ErrLogNotAllowed, name)
	}
	return filepath.Join(s.superbotDir, "logs", name), nil
}

func (s *Service) logInfo(name string, tail int) (LogInfo, error) {
	path, err := s.LogPath(name)
	if err != nil {
		return LogInfo{}, err
	}

	info := LogInfo{Name: name}
	stat, statErr := os.Stat(path)
	content := fileutil.ReadFileOr(path)
	if statErr != nil || !content.Exists {
		return info, nil
	}
	info.Exists = true
	info.Size = stat.Size()
	info.Modified = stat.ModTime().UTC()
	info.Lines = fileutil.TailLines(content.Content, tail)
	return info, nil
}

func (s *Service) logAllowed(name string) bool {
	for _, allowed := range s.allowedLogs {
		if name == allowed {
			return true
		}
	}
	return false
}
