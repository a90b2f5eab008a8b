package service

import (
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/internal/store"
	"github.com/flicsl/jsonsync/models"
)

// Services groups the reference backend's services.
type Services struct {
	ResourceService ResourceService
	AppInfoService  AppInfoService
}

// NewServices wires the services on top of storages. The resource service is
// wrapped with request validation.
func NewServices(storages *store.Storages, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	resources := NewResourceService(storages.RecordRepository, logger)

	return &Services{
		ResourceService: NewResourceValidationService().Wrap(resources),
		AppInfoService:  appInfo,
	}, nil
}
