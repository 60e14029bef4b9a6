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

import "errors"

// Sentinel errors for the space repository.
//
// Only malformed caller input surfaces as an error; I/O problems on
// the read path degrade to empty results instead.
var (
	// ErrInvalidSlug indicates a slug with characters outside [A-Za-z0-9_-].
	ErrInvalidSlug = errors.New("invalid space slug")

	// ErrSpaceNotFound indicates no directory exists for the slug.
	ErrSpaceNotFound = errors.New("space not found")

	// ErrPathEscape indicates a document path that resolves outside the
	// space's docs directory.
	ErrPathEscape = errors.New("document path escapes docs directory")
)
