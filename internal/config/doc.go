// Package config provides configuration loading, merging, and validation
// facilities for the synchronizer client and the reference backend.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetClientConfig] for the interactive client and
// [GetServerConfig] for the backend. Both fill unset fields with defaults
// before validating.
package config
