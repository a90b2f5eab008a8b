package service

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/internal/store"
	"github.com/flicsl/jsonsync/internal/utils"
	"github.com/flicsl/jsonsync/models"
)

type resourceService struct {
	recordRepository store.RecordRepository
	ids              *utils.UUIDGenerator

	logger *logger.Logger
}

func NewResourceService(recordRepository store.RecordRepository, logger *logger.Logger) ResourceService {
	return &resourceService{
		recordRepository: recordRepository,
		ids:              utils.NewUUIDGenerator(),
		logger:           logger,
	}
}

func (s *resourceService) List(ctx context.Context, req models.ListRequest) (models.ListResult, error) {
	return s.recordRepository.List(ctx, req)
}

func (s *resourceService) Get(ctx context.Context, resource, id string) (models.Record, error) {
	return s.recordRepository.Get(ctx, resource, id)
}

func (s *resourceService) Put(ctx context.Context, resource string, body map[string]any) (models.Record, error) {
	body = maps.Clone(body)
	if body == nil {
		body = map[string]any{}
	}

	id := recordID(body)
	if id == "" {
		id = s.ids.Generate()
		body[models.RecordIDField] = id
		logger.FromContext(ctx).Debug().Str("resource", resource).Str("id", id).Msg("generated record id")
	}

	return s.recordRepository.Upsert(ctx, models.Record{Resource: resource, ID: id, Body: body})
}

func (s *resourceService) Delete(ctx context.Context, resource, id string) error {
	return s.recordRepository.Delete(ctx, resource, id)
}

// recordID renders the body's id field as text. Missing, null and blank ids
// yield "".
func recordID(body map[string]any) string {
	raw, ok := body[models.RecordIDField]
	if !ok || raw == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(raw))
}
