// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.NotEmpty(t, cfg.SuperbotDir)
	assert.Equal(t, filepath.Join(cfg.SuperbotDir, "spaces"), cfg.SpacesDir)
	assert.Contains(t, cfg.AllowedLogs, "heartbeat.log")
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"port: 8080\nsuperbotDir: "+dir+"\nlogLevel: debug\nallowedLogs: [a.log]\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, dir, cfg.SuperbotDir)
	assert.Equal(t, filepath.Join(dir, "spaces"), cfg.SpacesDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"a.log"}, cfg.AllowedLogs)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\n"), 0o644))

	t.Setenv("DASHBOARD_PORT", "9000")
	t.Setenv("SUPERBOT_DIR", dir)
	t.Setenv("SUPERBOT_TASKS_DIR", filepath.Join(dir, "tasks"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, dir, cfg.SuperbotDir)
	assert.Equal(t, filepath.Join(dir, "spaces"), cfg.SpacesDir)
	assert.Equal(t, filepath.Join(dir, "tasks"), cfg.TasksDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a port\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.SuperbotDir = ""
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}
