// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client and the reference backend. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix : prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the client transport settings (backend address and
	// request timeout).
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Resource describes which REST resource the client synchronizes and
	// how it pages through it.
	Resource Resource `envPrefix:"RESOURCE_"`

	// Server holds network address and timeout settings for the backend.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds configuration for the backend persistence layer.
	Storage Storage `envPrefix:"STORAGE_"`

	// Log holds logging sink settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds the client-side transport settings.
type Adapter struct {
	// HTTPAddress is the backend base URL, with or without scheme
	// (e.g. "localhost:3000", "https://api.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Resource describes the REST resource a client binds to.
type Resource struct {
	// Path is the resource URL segment (e.g. "players").
	// Env: RESOURCE_PATH
	Path string `env:"PATH"`

	// PageSize is the number of elements requested per page.
	// Env: RESOURCE_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// PollInterval, when positive, re-runs the current query periodically.
	// Env: RESOURCE_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the backend listens on ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the backend storage.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by its form: "postgres://..." or
	// "postgresql://..." opens PostgreSQL through pgx, anything else is
	// treated as a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Log holds logging sink settings.
type Log struct {
	// FilePath is where the interactive client writes its log. Empty means
	// a "logs" file next to the executable.
	// Env: LOG_FILE
	FilePath string `env:"FILE"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (last source wins for non-zero
// fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
