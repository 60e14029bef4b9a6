// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package dashboard

import (
	"github.com/AleutianAI/superbot-dashboard/services/dashboard/decisions"
	"github.com/AleutianAI/superbot-dashboard/services/dashboard/spaces"
	"github.com/AleutianAI/superbot-dashboard/services/dashboard/system"
)

// ServiceVersion is the dashboard service version.
const ServiceVersion = "0.1.0"

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the error code (optional).
	Code string `json:"code,omitempty"`
}

// SpacesResponse wraps the space listing.
type SpacesResponse struct {
	Spaces []spaces.Summary `json:"spaces"`
}

// TasksResponse wraps a space's task listing.
type TasksResponse struct {
	Tasks []spaces.Task `json:"tasks"`
}

// DocsResponse wraps a space's document listing.
type DocsResponse struct {
	Docs []spaces.DocFile `json:"docs"`
}

// DocResponse is one document's content.
type DocResponse struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Exists  bool   `json:"exists"`
}

// DecisionsResponse wraps a decision listing.
type DecisionsResponse struct {
	Decisions []decisions.Decision `json:"decisions"`
}

// CreateDecisionRequest is the body for POST /api/decisions.
type CreateDecisionRequest struct {
	// Space is the slug of the space the decision belongs to.
	Space string `json:"space" binding:"required,slug"`

	// Question is the decision to be made.
	Question string `json:"question" binding:"required"`

	// Context gives optional background for the question.
	Context string `json:"context"`

	// SuggestedAnswers are optional preset choices.
	SuggestedAnswers []decisions.SuggestedAnswer `json:"suggestedAnswers"`
}

// ResolveDecisionRequest is the body for PATCH
// /api/spaces/:slug/decisions/:id. Absent fields are left unchanged.
type ResolveDecisionRequest struct {
	Status     *string `json:"status"`
	Resolution *string `json:"resolution"`
}

// LogsResponse wraps the allowlisted log listing.
type LogsResponse struct {
	Logs []system.LogInfo `json:"logs"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// ReadyResponse is returned by the readiness endpoint.
type ReadyResponse struct {
	Ready  bool `json:"ready"`
	Spaces int  `json:"spaces"`
}
