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
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/superbot-dashboard/services/dashboard/system"
)

// Context endpoints serve the bot's markdown context files verbatim.
// Each one degrades to exists=false rather than erroring when the
// file is missing.

// HandleIdentity handles GET /api/identity.
func (h *Handlers) HandleIdentity(c *gin.Context) { h.contextFile(c, "IDENTITY.md") }

// HandleUser handles GET /api/user.
func (h *Handlers) HandleUser(c *gin.Context) { h.contextFile(c, "USER.md") }

// HandleMemory handles GET /api/memory.
func (h *Handlers) HandleMemory(c *gin.Context) { h.contextFile(c, "MEMORY.md") }

// HandleHeartbeat handles GET /api/heartbeat.
func (h *Handlers) HandleHeartbeat(c *gin.Context) { h.contextFile(c, "HEARTBEAT.md") }

// HandleOnboard handles GET /api/onboard.
func (h *Handlers) HandleOnboard(c *gin.Context) { h.contextFile(c, "ONBOARD.md") }

func (h *Handlers) contextFile(c *gin.Context, name string) {
	c.JSON(http.StatusOK, h.system.ContextFile(name))
}

// HandleDailyNotes handles GET /api/daily.
func (h *Handlers) HandleDailyNotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notes": h.system.DailyNotes()})
}

// HandleDailyNote handles GET /api/daily/:date.
func (h *Handlers) HandleDailyNote(c *gin.Context) {
	c.JSON(http.StatusOK, h.system.DailyNote(c.Param("date")))
}

// HandleSessions handles GET /api/sessions.
func (h *Handlers) HandleSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": h.system.Sessions()})
}

// HandleTeam handles GET /api/team.
func (h *Handlers) HandleTeam(c *gin.Context) {
	c.JSON(http.StatusOK, h.system.Team())
}

// HandleInboxes handles GET /api/inbox.
func (h *Handlers) HandleInboxes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"inboxes": h.system.Inboxes()})
}

// HandleInbox handles GET /api/inbox/:name.
func (h *Handlers) HandleInbox(c *gin.Context) {
	name, messages := h.system.Inbox(c.Param("name"))
	c.JSON(http.StatusOK, gin.H{"name": name, "messages": messages})
}

// HandleTasks handles GET /api/tasks, the global task-group view.
func (h *Handlers) HandleTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": h.system.TaskGroups()})
}

// HandleSkills handles GET /api/skills.
func (h *Handlers) HandleSkills(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"skills": h.system.Skills()})
}

// HandleConfig handles GET /api/config. Credentials are masked before
// the config leaves the process.
func (h *Handlers) HandleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.system.ConfigRedacted())
}

// HandleSchedule handles GET /api/schedule.
func (h *Handlers) HandleSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, h.system.Schedule())
}

// HandlePrompts handles GET /api/prompts.
func (h *Handlers) HandlePrompts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prompts": h.system.Prompts()})
}

// HandlePrompt handles GET /api/prompts/:id.
func (h *Handlers) HandlePrompt(c *gin.Context) {
	c.JSON(http.StatusOK, h.system.Prompt(c.Param("id")))
}

// HandleLogs handles GET /api/logs.
func (h *Handlers) HandleLogs(c *gin.Context) {
	c.JSON(http.StatusOK, LogsResponse{Logs: h.system.Logs()})
}

// HandleLogTail handles GET /api/logs/:name.
//
// Response:
//
//	200 OK: system.LogInfo with the last 100 lines
//	403 Forbidden: name outside the allowlist
func (h *Handlers) HandleLogTail(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleLogTail")

	info, err := h.system.LogTail(c.Param("name"))
	if err != nil {
		h.logError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// HandleStatus handles GET /api/status.
func (h *Handlers) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildStatus())
}

func (h *Handlers) buildStatus() system.Status {
	if h.activity != nil {
		return h.system.BuildStatus(h.activity.LastActivity())
	}
	return h.system.BuildStatus(nil)
}

func (h *Handlers) logError(c *gin.Context, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	errCode := "INTERNAL"
	if errors.Is(err, system.ErrLogNotAllowed) {
		statusCode = http.StatusForbidden
		errCode = "LOG_NOT_ALLOWED"
	}
	logger.Warn("Log request rejected", "error", err, "name", strings.TrimSpace(c.Param("name")))
	c.JSON(statusCode, ErrorResponse{Error: err.Error(), Code: errCode})
}
