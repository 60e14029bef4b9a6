// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package decisions

import "errors"

// Sentinel errors for the decision store.
var (
	// ErrInvalidSpace indicates a space identifier with unsafe characters.
	ErrInvalidSpace = errors.New("invalid space identifier")

	// ErrUnknownSpace indicates a space whose metadata record does not exist.
	ErrUnknownSpace = errors.New("unknown space")

	// ErrEmptyQuestion indicates a create request without a question.
	ErrEmptyQuestion = errors.New("question is required")

	// ErrNotFound indicates no decision with the given id in the space.
	ErrNotFound = errors.New("decision not found")
)
