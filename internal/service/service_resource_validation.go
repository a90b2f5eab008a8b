package service

import (
	"context"
	"fmt"

	"github.com/flicsl/jsonsync/internal/validators"
	"github.com/flicsl/jsonsync/models"
)

// ResourceValidationService rejects malformed requests before they reach the
// wrapped service. Rejections wrap [ErrInvalidDataProvided].
type ResourceValidationService struct {
	inner     ResourceService
	validator validators.Validator
}

func NewResourceValidationService() ResourceServiceWrapper {
	return &ResourceValidationService{
		validator: validators.NewRecordValidator(),
	}
}

func (v *ResourceValidationService) List(ctx context.Context, req models.ListRequest) (models.ListResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.ListResult{}, invalid(err)
	}

	return v.inner.List(ctx, req)
}

func (v *ResourceValidationService) Get(ctx context.Context, resource, id string) (models.Record, error) {
	if err := v.validator.Validate(ctx, models.Record{Resource: resource, ID: id}, validators.FieldResource, validators.FieldID); err != nil {
		return models.Record{}, invalid(err)
	}

	return v.inner.Get(ctx, resource, id)
}

func (v *ResourceValidationService) Put(ctx context.Context, resource string, body map[string]any) (models.Record, error) {
	if err := v.validator.Validate(ctx, models.Record{Resource: resource, Body: body}, validators.FieldResource, validators.FieldBody); err != nil {
		return models.Record{}, invalid(err)
	}

	// a client-chosen id must be a valid path segment
	if id := recordID(body); id != "" {
		if err := v.validator.Validate(ctx, models.Record{ID: id}, validators.FieldID); err != nil {
			return models.Record{}, invalid(err)
		}
	}

	return v.inner.Put(ctx, resource, body)
}

func (v *ResourceValidationService) Delete(ctx context.Context, resource, id string) error {
	if err := v.validator.Validate(ctx, models.Record{Resource: resource, ID: id}, validators.FieldResource, validators.FieldID); err != nil {
		return invalid(err)
	}

	return v.inner.Delete(ctx, resource, id)
}

func (v *ResourceValidationService) Wrap(wrapped ResourceService) ResourceService {
	v.inner = wrapped
	return v
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
