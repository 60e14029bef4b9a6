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
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/superbot-dashboard/pkg/logging"
	"github.com/AleutianAI/superbot-dashboard/services/dashboard"
	"github.com/AleutianAI/superbot-dashboard/services/dashboard/config"
	"github.com/AleutianAI/superbot-dashboard/services/dashboard/decisions"
	"github.com/AleutianAI/superbot-dashboard/services/dashboard/spaces"
	"github.com/AleutianAI/superbot-dashboard/services/dashboard/system"
	"github.com/AleutianAI/superbot-dashboard/services/dashboard/watch"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if portFlag != 0 {
		cfg.Port = portFlag
	}
	if debugMode {
		cfg.LogLevel = "debug"
	}

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.LogLevel),
		LogDir:  cfg.LogDir,
		Service: "dashboard",
	})
	defer logger.Close()
	slog.SetDefault(logger.Slog())

	if debugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	repo := spaces.NewRepository(cfg.SpacesDir)
	store := decisions.NewStore(cfg.SpacesDir)
	sys := system.NewService(system.Options{
		SuperbotDir: cfg.SuperbotDir,
		TeamDir:     cfg.TeamDir,
		SkillsDir:   cfg.SkillsDir,
		TasksDir:    cfg.TasksDir,
		AllowedLogs: cfg.AllowedLogs,
	})

	watcher, err := watch.NewWatcher([]string{cfg.SuperbotDir, cfg.TeamDir}, logger.Slog())
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Stop()

	handlers := dashboard.NewHandlers(repo, store, sys, watcher)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(dashboard.MetricsMiddleware())
	if debugMode {
		router.Use(gin.Logger())
	}
	dashboard.RegisterRoutes(&router.RouterGroup, handlers)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.Info("Starting dashboard server",
			slog.String("address", server.Addr),
			slog.String("superbot_dir", cfg.SuperbotDir),
			slog.String("spaces_dir", cfg.SpacesDir))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down dashboard server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
