// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/superbot-dashboard/services/dashboard"
)

// --- Global Command Variables ---
var (
	configPath string
	portFlag   int
	debugMode  bool

	rootCmd = &cobra.Command{
		Use:   "dashboard",
		Short: "Local dashboard server for the superbot data directory",
		Long: `The dashboard serves a JSON API over the superbot's working
files: spaces with tasks, docs, and decisions, plus the bot's
context, sessions, inboxes, logs, and schedule.`,
		RunE: runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		RunE:  runServe,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the dashboard version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("dashboard " + dashboard.ServiceVersion)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to dashboard.yaml (default: <superbot dir>/dashboard.yaml)")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", 0, "Listen port (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
