// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads dashboard server configuration with priority
// env > file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/superbot-dashboard/pkg/fileutil"
)

// DefaultPort is the dashboard's listen port when nothing overrides it.
const DefaultPort = 3274

// Config holds the dashboard server settings.
type Config struct {
	// Port is the HTTP listen port.
	Port int `yaml:"port"`

	// SuperbotDir is the bot's data root (context files, daily notes,
	// sessions, logs, config, prompts).
	SuperbotDir string `yaml:"superbotDir"`

	// SpacesDir holds the per-space workspaces. Defaults to
	// SuperbotDir/spaces.
	SpacesDir string `yaml:"spacesDir"`

	// TeamDir holds the team config and inboxes.
	TeamDir string `yaml:"teamDir"`

	// SkillsDir holds installed skills.
	SkillsDir string `yaml:"skillsDir"`

	// TasksDir holds the global task groups.
	TasksDir string `yaml:"tasksDir"`

	// LogLevel is the slog level (debug, info, warn, error).
	LogLevel string `yaml:"logLevel"`

	// LogDir receives the dashboard's own log files; empty disables
	// file logging.
	LogDir string `yaml:"logDir"`

	// AllowedLogs is the allowlist of bot log files the API may serve.
	AllowedLogs []string `yaml:"allowedLogs"`
}

// Default returns the configuration used when no file or environment
// override is present. Paths mirror where the bot tooling writes.
func Default() Config {
	return Config{
		Port:        DefaultPort,
		SuperbotDir: fileutil.ExpandPath("~/.superbot"),
		TeamDir:     fileutil.ExpandPath("~/.claude/teams/superbot"),
		SkillsDir:   fileutil.ExpandPath("~/.claude/skills"),
		TasksDir:    fileutil.ExpandPath("~/.claude/tasks"),
		LogLevel:    "info",
		AllowedLogs: []string{"heartbeat.log", "slack-bot.log", "scheduler.log", "observer.log", "worker.log"},
	}
}

// Load builds the configuration: defaults, then the YAML file at
// configPath (empty means SuperbotDir/dashboard.yaml), then
// environment variables, then validation.
func Load(configPath string) (Config, error) {
	config := Default()

	path := configPath
	if path == "" {
		path = filepath.Join(config.SuperbotDir, "dashboard.yaml")
	}
	if err := loadFile(path, &config); err != nil {
		return config, fmt.Errorf("load config file: %w", err)
	}

	loadEnv(&config)
	config.applyDerived()

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.SuperbotDir == "" {
		return fmt.Errorf("superbotDir must not be empty")
	}
	return nil
}

// applyDerived fills paths that default relative to SuperbotDir.
func (c *Config) applyDerived() {
	if c.SpacesDir == "" {
		c.SpacesDir = filepath.Join(c.SuperbotDir, "spaces")
	}
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	config.SuperbotDir = fileutil.ExpandPath(config.SuperbotDir)
	config.SpacesDir = fileutil.ExpandPath(config.SpacesDir)
	config.TeamDir = fileutil.ExpandPath(config.TeamDir)
	config.SkillsDir = fileutil.ExpandPath(config.SkillsDir)
	config.TasksDir = fileutil.ExpandPath(config.TasksDir)
	return nil
}

func loadEnv(config *Config) {
	if v := os.Getenv("DASHBOARD_PORT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Port = i
		}
	}
	if v := os.Getenv("SUPERBOT_DIR"); v != "" {
		config.SuperbotDir = fileutil.ExpandPath(v)
	}
	if v := os.Getenv("SUPERBOT_SPACES_DIR"); v != "" {
		config.SpacesDir = fileutil.ExpandPath(v)
	}
	if v := os.Getenv("SUPERBOT_TEAM_DIR"); v != "" {
		config.TeamDir = fileutil.ExpandPath(v)
	}
	if v := os.Getenv("SUPERBOT_SKILLS_DIR"); v != "" {
		config.SkillsDir = fileutil.ExpandPath(v)
	}
	if v := os.Getenv("SUPERBOT_TASKS_DIR"); v != "" {
		config.TasksDir = fileutil.ExpandPath(v)
	}
	if v := os.Getenv("DASHBOARD_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("DASHBOARD_LOG_DIR"); v != "" {
		config.LogDir = fileutil.ExpandPath(v)
	}
}
