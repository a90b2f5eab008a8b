package config

import "errors"

// Validation errors returned by [ClientConfig.validate] and
// [ServerConfig.validate] when required configuration groups are incomplete.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidResourceConfigs indicates an empty resource path, a
	// non-positive page size or a negative poll interval.
	ErrInvalidResourceConfigs = errors.New("invalid resource configuration")
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates an empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
