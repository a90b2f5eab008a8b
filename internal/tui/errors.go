// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flicsl/jsonsync/internal/adapter"
)

const msgServerUnavailable = "network is down or the server is unavailable"

// humanizeError turns a request failure into one line for the error overlay.
// The backend's {"message": ...} payload is preferred over the raw error.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var reqErr *adapter.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode != 0 {
		if payload, ok := reqErr.Payload.(map[string]any); ok {
			if message, ok := payload["message"].(string); ok && message != "" {
				return fmt.Sprintf("%d: %s", reqErr.StatusCode, message)
			}
		}
		return fmt.Sprintf("%d: %v", reqErr.StatusCode, reqErr.Err)
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return msgServerUnavailable
	}

	return err.Error()
}
