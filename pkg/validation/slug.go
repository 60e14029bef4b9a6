// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for
// security-critical operations.
//
// Every identifier that reaches this package is later joined into a
// filesystem path, so the validators here are the line between URL
// parameters and path traversal.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// slugPattern matches filesystem- and URL-safe identifiers: space
// slugs, inbox names, prompt ids.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateSlug validates a slug used to locate a directory or file on
// disk.
//
// Valid slugs contain only letters, digits, underscores, and hyphens,
// and are non-empty. Anything else is rejected before it can be
// joined into a path.
//
// Example:
//
//	if err := validation.ValidateSlug(slug); err != nil {
//	    return nil, fmt.Errorf("%w: %v", ErrInvalidSlug, err)
//	}
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug cannot be empty")
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("invalid slug %q (only letters, digits, _ and - allowed)", slug)
	}
	return nil
}

// IsSafeSlug reports whether slug passes ValidateSlug.
func IsSafeSlug(slug string) bool {
	return ValidateSlug(slug) == nil
}

// SanitizeDate strips every character that is not a digit or hyphen,
// leaving at most a YYYY-MM-DD shape. Used for daily-note lookups
// where the parameter names a file.
func SanitizeDate(date string) string {
	var b strings.Builder
	for _, r := range date {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeName strips every character outside [A-Za-z0-9_-]. Used for
// inbox names and prompt ids, which are sanitized rather than
// rejected.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
