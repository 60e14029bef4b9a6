// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package system

import "regexp"

// The dashboard serves the superbot config over HTTP to a browser.
// The config holds Slack and API credentials, so everything that
// looks like a token, and every value under a sensitive-looking key,
// is replaced before the JSON leaves the process.

// tokenPattern matches well-known credential prefixes (Slack bot/app/
// user tokens, OpenAI-style keys, GitHub tokens) followed by the rest
// of the token.
var tokenPattern = regexp.MustCompile(`\b(xoxb-|xapp-|xoxp-|sk-|ghp_|ghu_)\S+`)

// sensitiveKeyPattern matches JSON key names whose string values are
// redacted wholesale regardless of content.
var sensitiveKeyPattern = regexp.MustCompile(`(?i)token|secret|key|password`)

const redactedPlaceholder = "***"

// Redact walks a decoded JSON value and returns a copy with
// credentials masked: string values under sensitive key names are
// replaced entirely, and token-shaped substrings are masked wherever
// they appear. Non-container, non-string values pass through
// unchanged.
func Redact(v any) any {
	switch val := v.(type) {
	case string:
		return tokenPattern.ReplaceAllString(val, redactedPlaceholder)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Redact(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, item := range val {
			if _, isString := item.(string); isString && sensitiveKeyPattern.MatchString(key) {
				out[key] = redactedPlaceholder
				continue
			}
			out[key] = Redact(item)
		}
		return out
	default:
		return v
	}
}
