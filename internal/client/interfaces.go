// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/flicsl/jsonsync/internal/service"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the foreground part of the client.
type UI interface {
	// Run drives synchronizer until the user quits or ctx is done.
	Run(ctx context.Context, synchronizer service.ResourceSynchronizer) error

	// Refresh redraws after the view-model changed in the background.
	Refresh()
}
