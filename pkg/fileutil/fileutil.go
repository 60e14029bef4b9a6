// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package fileutil provides best-effort file access helpers for the
// dashboard's read paths.
//
// The dashboard is a reporting tool over files written by other
// processes. A file that is missing, unreadable, or mid-write must
// never take a whole view down, so every reader in this package
// collapses I/O failure into an empty or fallback value. Write-path
// validation is the caller's job; these helpers only handle the
// lenient read side.
package fileutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileContent is the result of a best-effort file read.
//
// Exists is false when the file is absent or unreadable; Content is
// the empty string in that case. Absence is not an error.
type FileContent struct {
	Content string `json:"content"`
	Exists  bool   `json:"exists"`
}

// ReadFileOr reads a text file, degrading to empty content on any
// failure.
func ReadFileOr(path string) FileContent {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileContent{}
	}
	return FileContent{Content: string(data), Exists: true}
}

// ReadJSONOr decodes a JSON file into dst.
//
// Returns false and leaves dst untouched when the file is absent,
// unreadable, or not valid JSON. Callers pass a zero-valued dst and
// treat false as "use the fallback".
func ReadJSONOr(path string, dst any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false
	}
	return true
}

// WriteJSONAtomic marshals v with indentation and writes it to path
// via a temp file and rename, so readers never observe a partially
// written file.
func WriteJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s to %s: %w", tmpName, path, err)
	}
	return nil
}

// TailLines returns the last n lines of content, joined with newlines.
// Content with n or fewer lines is returned unchanged.
func TailLines(content string, n int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= n {
		return content
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

// CountLines returns the number of newline-delimited lines in the
// file at path, or 0 when the file cannot be read.
func CountLines(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	return len(strings.Split(string(data), "\n"))
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
