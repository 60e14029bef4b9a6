// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command dashboard starts the superbot dashboard API server.
//
// The dashboard is a read-mostly JSON API over the superbot's data
// directory: spaces with their tasks, docs, and decisions, plus the
// bot's context files, sessions, inboxes, logs, and schedule.
//
// Usage:
//
//	go run ./cmd/dashboard
//	go run ./cmd/dashboard serve --port 8080
//	go run ./cmd/dashboard version
//
// Example requests:
//
//	# Health check
//	curl http://localhost:3274/api/health
//
//	# List spaces
//	curl http://localhost:3274/api/spaces | jq
//
//	# Create a decision
//	curl -X POST http://localhost:3274/api/decisions \
//	  -H "Content-Type: application/json" \
//	  -d '{"space": "acme", "question": "Postgres or SQLite?"}'
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
