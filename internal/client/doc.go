// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It binds one REST resource to a view-model through a synchronizer, runs
// the synchronizer's trigger and the optional polling reload in the
// background, and shows the terminal browser until the user quits.
package client
