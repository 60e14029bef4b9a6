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

// Decision lifecycle statuses.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
)

// SuggestedAnswer is one proposed answer to a decision question.
type SuggestedAnswer struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Decision is one question awaiting (or past) human resolution.
//
// Ids are unique and monotonically allocated within one space's file
// only; the same id can exist in different spaces. The Space field is
// attached in the aggregated view for the caller's convenience and is
// never persisted — which file the record lives in implies the space,
// so the marshaller omits the empty value on write.
type Decision struct {
	ID               int               `json:"id"`
	Question         string            `json:"question"`
	Context          string            `json:"context,omitempty"`
	SuggestedAnswers []SuggestedAnswer `json:"suggestedAnswers"`
	Status           string            `json:"status"`
	Resolution       *string           `json:"resolution"`
	CreatedAt        string            `json:"createdAt"`
	ResolvedAt       *string           `json:"resolvedAt"`
	Space            string            `json:"space,omitempty"`
}

// CreateRequest carries the fields for a new decision.
type CreateRequest struct {
	Space            string
	Question         string
	Context          string
	SuggestedAnswers []SuggestedAnswer
}

// ResolveUpdates carries the fields a resolve call may change. Nil
// fields are left untouched.
type ResolveUpdates struct {
	Status     *string
	Resolution *string
}
