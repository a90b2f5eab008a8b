package config

import (
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Defaults applied to fields no source has set.
const (
	DefaultAdapterRequestTimeout = 15 * time.Second
	DefaultPageSize              = 10
	DefaultServerAddress         = "localhost:3000"
	DefaultServerRequestTimeout  = 30 * time.Second
	DefaultDSN                   = "jsonsync.db"
)

// ClientConfig is the subset of [StructuredConfig] the interactive client
// consumes.
type ClientConfig struct {
	Adapter  Adapter
	Resource Resource
	Log      Log
}

// ServerConfig is the subset of [StructuredConfig] the reference backend
// consumes.
type ServerConfig struct {
	Server  Server
	Storage Storage
}

// GetClientConfig loads the merged configuration, fills defaults and
// validates the client view.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, err
	}

	return NewClientConfig(cfg)
}

// GetServerConfig loads the merged configuration, fills defaults and
// validates the backend view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, err
	}

	return NewServerConfig(cfg)
}

// NewClientConfig projects cfg onto a validated [ClientConfig].
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		Adapter:  cfg.Adapter,
		Resource: cfg.Resource,
		Log:      cfg.Log,
	}

	defaults := ClientConfig{
		Adapter:  Adapter{RequestTimeout: DefaultAdapterRequestTimeout},
		Resource: Resource{PageSize: DefaultPageSize},
	}
	if err := mergo.Merge(clientCfg, defaults); err != nil {
		return nil, fmt.Errorf("error applying client defaults: %w", err)
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}

// NewServerConfig projects cfg onto a validated [ServerConfig].
func NewServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		Server:  cfg.Server,
		Storage: cfg.Storage,
	}

	defaults := ServerConfig{
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultServerRequestTimeout,
		},
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
	}
	if err := mergo.Merge(serverCfg, defaults); err != nil {
		return nil, fmt.Errorf("error applying server defaults: %w", err)
	}

	if err := serverCfg.validate(); err != nil {
		return nil, err
	}

	return serverCfg, nil
}
