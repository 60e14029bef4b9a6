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
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// The dashboard binds to localhost; the browser UI is served from
	// a different local port.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamMessage is one websocket frame on the log stream.
type streamMessage struct {
	Type  string `json:"type"` // "snapshot", "append", or "error"
	Name  string `json:"name"`
	Lines string `json:"lines,omitempty"`
	Error string `json:"error,omitempty"`
}

func sendJSON(ws *websocket.Conn, v any) error {
	err := ws.WriteJSON(v)
	if err != nil {
		slog.Warn("Failed to write WebSocket JSON", "error", err)
	}
	return err
}

// HandleLogStream handles GET /api/logs/:name/stream.
//
// Upgrades to a websocket, sends the current tail as a snapshot, then
// pushes appended bytes as the log grows. Only allowlisted logs can
// be streamed.
func (h *Handlers) HandleLogStream(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleLogStream")

	name := c.Param("name")
	path, err := h.system.LogPath(name)
	if err != nil {
		h.logError(c, logger, err)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("failed to upgrade the websocket", "error", err)
		return
	}
	defer ws.Close()
	logger.Info("Log stream client connected", "log", name)

	// Initial snapshot: the same tail the detail endpoint serves.
	info, err := h.system.LogTail(name)
	if err != nil {
		sendJSON(ws, streamMessage{Type: "error", Name: name, Error: err.Error()})
		return
	}
	if err := sendJSON(ws, streamMessage{Type: "snapshot", Name: name, Lines: info.Lines}); err != nil {
		return
	}

	// Reads detect client disconnects; the tail loop owns writes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.tailLog(ws, name, path, done, logger); err != nil {
		logger.Warn("Log stream ended", "log", name, "error", err)
	}
}

// tailLog pushes bytes appended to path until the client disconnects.
func (h *Handlers) tailLog(ws *websocket.Conn, name, path string, done <-chan struct{}, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: the log may not exist yet, and rotation
	// replaces the file out from under a file-level watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	offset := int64(0)
	if stat, err := os.Stat(path); err == nil {
		offset = stat.Size()
	}

	for {
		select {
		case <-done:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			appended, newOffset, err := readFrom(path, offset)
			if err != nil {
				continue
			}
			offset = newOffset
			if appended == "" {
				continue
			}
			if err := sendJSON(ws, streamMessage{Type: "append", Name: name, Lines: appended}); err != nil {
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Log stream watcher error", "error", err)
		}
	}
}

// readFrom returns the bytes of path past offset and the new offset.
// A file smaller than the offset was truncated or rotated; reading
// restarts from the beginning.
func readFrom(path string, offset int64) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", offset, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", offset, err
	}
	if stat.Size() < offset {
		offset = 0
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return "", offset, err
	}
	data, err := io.ReadAll(f)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", offset, err
	}
	return string(data), offset + int64(len(data)), nil
}
