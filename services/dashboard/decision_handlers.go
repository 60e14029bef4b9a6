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
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/superbot-dashboard/services/dashboard/decisions"
)

// HandleListAllDecisions handles GET /api/decisions.
//
// Query parameters:
//
//	status - optional filter ("pending" or "resolved")
//	space  - optional space slug filter
//
// Response:
//
//	200 OK: DecisionsResponse, newest first
func (h *Handlers) HandleListAllDecisions(c *gin.Context) {
	all := h.decisions.ListAll(c.Query("status"), c.Query("space"))
	c.JSON(http.StatusOK, DecisionsResponse{Decisions: all})
}

// HandleListSpaceDecisions handles GET /api/spaces/:slug/decisions.
func (h *Handlers) HandleListSpaceDecisions(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleListSpaceDecisions")

	list, err := h.decisions.ListSpace(c.Param("slug"))
	if err != nil {
		h.decisionError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, DecisionsResponse{Decisions: list})
}

// HandleCreateDecision handles POST /api/decisions.
//
// Request Body:
//
//	CreateDecisionRequest
//
// Response:
//
//	201 Created: decisions.Decision
//	400 Bad Request: validation error or unknown space
func (h *Handlers) HandleCreateDecision(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleCreateDecision")

	var req CreateDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	created, err := h.decisions.Create(decisions.CreateRequest{
		Space:            req.Space,
		Question:         req.Question,
		Context:          req.Context,
		SuggestedAnswers: req.SuggestedAnswers,
	})
	if err != nil {
		h.decisionError(c, logger, err)
		return
	}

	decisionWrites.WithLabelValues("create").Inc()
	logger.Info("Decision created", "space", req.Space, "id", created.ID)
	c.JSON(http.StatusCreated, created)
}

// HandleResolveDecision handles PATCH /api/spaces/:slug/decisions/:id.
//
// Request Body:
//
//	ResolveDecisionRequest
//
// Response:
//
//	200 OK: the updated decisions.Decision
//	400 Bad Request: malformed slug or id
//	404 Not Found: no decision with that id in the space
func (h *Handlers) HandleResolveDecision(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleResolveDecision")

	id := parseID(c.Param("id"))
	if id < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "decision id must be a positive integer",
			Code:  "INVALID_ID",
		})
		return
	}

	var req ResolveDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	updated, err := h.decisions.Resolve(c.Param("slug"), id, decisions.ResolveUpdates{
		Status:     req.Status,
		Resolution: req.Resolution,
	})
	if err != nil {
		h.decisionError(c, logger, err)
		return
	}

	decisionWrites.WithLabelValues("resolve").Inc()
	logger.Info("Decision updated", "space", c.Param("slug"), "id", id)
	c.JSON(http.StatusOK, updated)
}

// decisionError maps decision store errors onto HTTP statuses.
func (h *Handlers) decisionError(c *gin.Context, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	errCode := "INTERNAL"

	if errors.Is(err, decisions.ErrInvalidSpace) {
		statusCode = http.StatusBadRequest
		errCode = "INVALID_SPACE"
	} else if errors.Is(err, decisions.ErrEmptyQuestion) {
		statusCode = http.StatusBadRequest
		errCode = "EMPTY_QUESTION"
	} else if errors.Is(err, decisions.ErrUnknownSpace) {
		statusCode = http.StatusBadRequest
		errCode = "UNKNOWN_SPACE"
	} else if errors.Is(err, decisions.ErrNotFound) {
		statusCode = http.StatusNotFound
		errCode = "DECISION_NOT_FOUND"
	}

	logger.Warn("Request rejected", "error", err)
	c.JSON(statusCode, ErrorResponse{Error: err.Error(), Code: errCode})
}
