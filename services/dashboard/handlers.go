// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package dashboard exposes the superbot dashboard HTTP API: spaces,
// tasks, docs, decisions, and the operational system views.
package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/superbot-dashboard/services/dashboard/decisions"
	"github.com/AleutianAI/superbot-dashboard/services/dashboard/spaces"
	"github.com/AleutianAI/superbot-dashboard/services/dashboard/system"
)

// ActivitySource reports the time of the last observed filesystem
// change, nil when none has been seen.
type ActivitySource interface {
	LastActivity() *time.Time
}

// Handlers contains the HTTP handlers for the dashboard API.
type Handlers struct {
	spaces    *spaces.Repository
	decisions *decisions.Store
	system    *system.Service
	activity  ActivitySource
}

// NewHandlers creates handlers over the given backends. activity may
// be nil when no watcher is running.
func NewHandlers(repo *spaces.Repository, store *decisions.Store, sys *system.Service, activity ActivitySource) *Handlers {
	return &Handlers{spaces: repo, decisions: store, system: sys, activity: activity}
}

// HandleHealth handles GET /api/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "dashboard",
		Version: ServiceVersion,
	})
}

// HandleReady handles GET /api/ready. The server is ready once the
// spaces root can be enumerated; the space count rides along for
// operators.
func (h *Handlers) HandleReady(c *gin.Context) {
	c.JSON(http.StatusOK, ReadyResponse{
		Ready:  true,
		Spaces: len(h.spaces.ListSpaces()),
	})
}

// HandleListSpaces handles GET /api/spaces.
//
// Response:
//
//	200 OK: SpacesResponse (always; missing data reads as empty)
func (h *Handlers) HandleListSpaces(c *gin.Context) {
	c.JSON(http.StatusOK, SpacesResponse{Spaces: h.spaces.ListSpaces()})
}

// HandleGetSpace handles GET /api/spaces/:slug.
//
// Response:
//
//	200 OK: spaces.Detail
//	400 Bad Request: malformed slug
//	404 Not Found: no such space
func (h *Handlers) HandleGetSpace(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGetSpace")

	detail, err := h.spaces.GetSpace(c.Param("slug"))
	if err != nil {
		h.spaceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// HandleGetOverview handles GET /api/spaces/:slug/overview.
func (h *Handlers) HandleGetOverview(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGetOverview")

	detail, err := h.spaces.GetSpace(c.Param("slug"))
	if err != nil {
		h.spaceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, detail.Overview)
}

// HandleListTasks handles GET /api/spaces/:slug/tasks.
func (h *Handlers) HandleListTasks(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleListTasks")

	tasks, err := h.spaces.ListTasks(c.Param("slug"))
	if err != nil {
		h.spaceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, TasksResponse{Tasks: tasks})
}

// HandleListDocs handles GET /api/spaces/:slug/docs.
func (h *Handlers) HandleListDocs(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleListDocs")

	docs, err := h.spaces.ListDocs(c.Param("slug"))
	if err != nil {
		h.spaceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, DocsResponse{Docs: docs})
}

// HandleGetDoc handles GET /api/spaces/:slug/docs/*path.
//
// Response:
//
//	200 OK: DocResponse (exists=false for a missing file)
//	400 Bad Request: malformed slug or path escaping the docs tree
//	404 Not Found: no such space
func (h *Handlers) HandleGetDoc(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGetDoc")

	slug := c.Param("slug")
	// The wildcard parameter keeps its leading slash.
	relPath := strings.TrimPrefix(c.Param("path"), "/")
	content, err := h.spaces.ReadDoc(slug, relPath)
	if err != nil {
		h.spaceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, DocResponse{
		Name:    relPath,
		Content: content.Content,
		Exists:  content.Exists,
	})
}

// spaceError maps repository errors onto HTTP statuses.
func (h *Handlers) spaceError(c *gin.Context, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	errCode := "INTERNAL"

	if errors.Is(err, spaces.ErrInvalidSlug) {
		statusCode = http.StatusBadRequest
		errCode = "INVALID_SLUG"
	} else if errors.Is(err, spaces.ErrPathEscape) {
		statusCode = http.StatusBadRequest
		errCode = "INVALID_PATH"
	} else if errors.Is(err, spaces.ErrSpaceNotFound) {
		statusCode = http.StatusNotFound
		errCode = "SPACE_NOT_FOUND"
	}

	logger.Warn("Request rejected", "error", err)
	c.JSON(statusCode, ErrorResponse{Error: err.Error(), Code: errCode})
}

// parseID converts a numeric path parameter, -1 on failure.
func parseID(raw string) int {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return -1
	}
	return id
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
