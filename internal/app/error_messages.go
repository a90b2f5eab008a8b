// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// reference backend handlers and middleware.
//
// All Msg* constants are human-readable message strings written into the
// {"message": ...} body of error responses. Keeping them in one place keeps
// the wording consistent across the API.
package app

const (
	// MsgRouteNotFound is returned for paths that match no route.
	MsgRouteNotFound = "route not found"

	// MsgMethodNotAllowed is a format string taking the rejected method. It
	// is returned when the path exists but does not accept that method.
	MsgMethodNotAllowed = "method %s is not allowed"

	// MsgInternalServerError replaces the details of unexpected failures.
	MsgInternalServerError = "internal server error"
)
