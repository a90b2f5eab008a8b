package handler

import (
	"github.com/flicsl/jsonsync/internal/config"
	"github.com/flicsl/jsonsync/internal/handler/http"
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, logger),
	}, nil
}
