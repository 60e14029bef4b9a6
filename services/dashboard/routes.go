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
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all dashboard routes with the router.
//
// Description:
//
//	Registers the /api/* endpoints with the given Gin router group.
//	The group should already have any required middleware applied.
//
// Space Endpoints:
//
//	GET /api/spaces - List space summaries
//	GET /api/spaces/:slug - Space detail with OVERVIEW.md
//	GET /api/spaces/:slug/overview - OVERVIEW.md content only
//	GET /api/spaces/:slug/tasks - Tasks sorted by priority
//	GET /api/spaces/:slug/docs - Markdown doc listing
//	GET /api/spaces/:slug/docs/*path - One doc's content
//
// Decision Endpoints:
//
//	GET /api/decisions - All decisions across spaces
//	POST /api/decisions - Create a decision in a space
//	GET /api/spaces/:slug/decisions - One space's decisions
//	PATCH /api/spaces/:slug/decisions/:id - Update status/resolution
//
// Context Endpoints:
//
//	GET /api/identity, /api/user, /api/memory, /api/heartbeat,
//	GET /api/onboard - Bot context markdown files
//
// Operational Endpoints:
//
//	GET /api/daily - Daily note listing
//	GET /api/daily/:date - One daily note
//	GET /api/sessions - Agent sessions
//	GET /api/team - Team configuration
//	GET /api/inbox - Inbox summaries
//	GET /api/inbox/:name - One inbox's messages
//	GET /api/skills - Installed skills
//	GET /api/tasks - Global task groups
//	GET /api/config - Redacted bot config
//	GET /api/schedule - Schedule and last run
//	GET /api/prompts - Prompt listing
//	GET /api/prompts/:id - One prompt
//	GET /api/logs - Allowlisted logs with tails
//	GET /api/logs/:name - One log's tail
//	GET /api/logs/:name/stream - Websocket live tail
//	GET /api/status - Aggregate status
//	GET /api/health - Health check
//	GET /api/ready - Readiness check
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	api := rg.Group("/api")
	{
		// Spaces
		api.GET("/spaces", handlers.HandleListSpaces)
		api.GET("/spaces/:slug", handlers.HandleGetSpace)
		api.GET("/spaces/:slug/overview", handlers.HandleGetOverview)
		api.GET("/spaces/:slug/tasks", handlers.HandleListTasks)
		api.GET("/spaces/:slug/docs", handlers.HandleListDocs)
		api.GET("/spaces/:slug/docs/*path", handlers.HandleGetDoc)

		// Decisions
		api.GET("/decisions", handlers.HandleListAllDecisions)
		api.POST("/decisions", handlers.HandleCreateDecision)
		api.GET("/spaces/:slug/decisions", handlers.HandleListSpaceDecisions)
		api.PATCH("/spaces/:slug/decisions/:id", handlers.HandleResolveDecision)

		// Bot context files
		api.GET("/identity", handlers.HandleIdentity)
		api.GET("/user", handlers.HandleUser)
		api.GET("/memory", handlers.HandleMemory)
		api.GET("/heartbeat", handlers.HandleHeartbeat)
		api.GET("/onboard", handlers.HandleOnboard)

		// Operational views
		api.GET("/daily", handlers.HandleDailyNotes)
		api.GET("/daily/:date", handlers.HandleDailyNote)
		api.GET("/sessions", handlers.HandleSessions)
		api.GET("/team", handlers.HandleTeam)
		api.GET("/inbox", handlers.HandleInboxes)
		api.GET("/inbox/:name", handlers.HandleInbox)
		api.GET("/skills", handlers.HandleSkills)
		api.GET("/tasks", handlers.HandleTasks)
		api.GET("/config", handlers.HandleConfig)
		api.GET("/schedule", handlers.HandleSchedule)
		api.GET("/prompts", handlers.HandlePrompts)
		api.GET("/prompts/:id", handlers.HandlePrompt)
		api.GET("/logs", handlers.HandleLogs)
		api.GET("/logs/:name", handlers.HandleLogTail)
		api.GET("/logs/:name/stream", handlers.HandleLogStream)
		api.GET("/status", handlers.HandleStatus)

		// Health checks
		api.GET("/health", handlers.HandleHealth)
		api.GET("/ready", handlers.HandleReady)
	}
}
