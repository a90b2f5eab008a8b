// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request decoding errors. Both map to 400 Bad Request.
var (
	// ErrInvalidJSONBody is returned when a PUT body is not a JSON object.
	ErrInvalidJSONBody = errors.New("request body must be a JSON object")

	// ErrInvalidQueryParam is returned when _start or _limit is not a
	// non-negative integer.
	ErrInvalidQueryParam = errors.New("invalid query parameter")
)
