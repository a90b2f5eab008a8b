package store

//go:generate mockgen -source=interfaces.go -destination=../mock/record_repository_mock.go -package=mock

import (
	"context"

	"github.com/flicsl/jsonsync/models"
)

// RecordRepository persists the JSON records served by the reference backend.
// Records are scoped by resource; ids are unique within a resource only.
type RecordRepository interface {
	// List returns the window req.Start..req.Start+req.Limit of the records
	// matching req, ordered by creation time, and the total number of matches.
	List(ctx context.Context, req models.ListRequest) (models.ListResult, error)
	Get(ctx context.Context, resource, id string) (models.Record, error)
	// Upsert inserts record or replaces the body of an existing one with the
	// same resource and id. CreatedAt of an existing record is preserved.
	Upsert(ctx context.Context, record models.Record) (models.Record, error)
	Delete(ctx context.Context, resource, id string) error
}

// ErrorClassificator decides whether a driver error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
