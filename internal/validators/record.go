package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/flicsl/jsonsync/models"
)

// Field name constants restrict Validate to a subset of checks.
const (
	// FieldResource targets the collection name, a single URL path segment.
	FieldResource = "resource"

	// FieldID targets the record identifier.
	FieldID = "id"

	// FieldBody targets the JSON object of a record.
	FieldBody = "body"

	// FieldWindow targets the start/limit pair of a list request.
	FieldWindow = "window"

	// FieldFilters targets the field names of list filters.
	FieldFilters = "filters"
)

// MaxIDLength bounds record identifiers.
const MaxIDLength = 256

var resourceNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// RecordValidator checks [models.Record] and [models.ListRequest] values.
type RecordValidator struct{}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate implements [Validator]. With no fields every check that applies to
// the value's type is run.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Record:
		return v.validateRecord(ctx, value, fields...)
	case *models.Record:
		return v.validateRecord(ctx, *value, fields...)

	case models.ListRequest:
		return v.validateListRequest(ctx, value, fields...)
	case *models.ListRequest:
		return v.validateListRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecord(_ context.Context, record models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldResource, FieldID, FieldBody}
	}

	for _, field := range fields {
		switch field {
		case FieldResource:
			if err := validateResource(record.Resource); err != nil {
				return err
			}
		case FieldID:
			if err := validateID(record.ID); err != nil {
				return err
			}
		case FieldBody:
			if record.Body == nil {
				return ErrEmptyBody
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *RecordValidator) validateListRequest(_ context.Context, req models.ListRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldResource, FieldWindow, FieldFilters}
	}

	for _, field := range fields {
		switch field {
		case FieldResource:
			if err := validateResource(req.Resource); err != nil {
				return err
			}
		case FieldWindow:
			if req.Start < 0 || req.Limit < 0 {
				return fmt.Errorf("%w: start=%d limit=%d", ErrInvalidWindow, req.Start, req.Limit)
			}
		case FieldFilters:
			for name := range req.Filters {
				// names end up inside a JSON path
				if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `"\`) {
					return fmt.Errorf("%w: %q", ErrInvalidFilter, name)
				}
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func validateResource(resource string) error {
	if !resourceNamePattern.MatchString(resource) {
		return fmt.Errorf("%w: %q", ErrInvalidResource, resource)
	}
	return nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" || len(id) > MaxIDLength || strings.Contains(id, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
