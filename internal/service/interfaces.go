package service

import (
	"context"

	"github.com/flicsl/jsonsync/models"
)

// ResourceService is the reference backend's view of resource collections.
// Every method is scoped by the resource name taken from the request path.
type ResourceService interface {
	List(ctx context.Context, req models.ListRequest) (models.ListResult, error)
	Get(ctx context.Context, resource, id string) (models.Record, error)

	// Put stores body under resource. The record id is the body's "id"
	// field; a UUIDv7 is generated when it is missing or empty.
	Put(ctx context.Context, resource string, body map[string]any) (models.Record, error)
	Delete(ctx context.Context, resource, id string) error
}

// ResourceServiceWrapper defines middleware composition for ResourceService.
// Implementations wrap an existing ResourceService to add behavior such as
// validation.
type ResourceServiceWrapper interface {
	Wrap(ResourceService) ResourceService
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppBuildInfo
}
