package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/models"
)

// recordRepository is the SQL implementation of [RecordRepository]. It works
// against both sqlite and PostgreSQL; the dialect only changes placeholders
// and the JSON field expression.
type recordRepository struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// List implements [RecordRepository]. The count query runs first so the
// total reflects the filters, not the window.
func (r *recordRepository) List(ctx context.Context, req models.ListRequest) (models.ListResult, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(req.Resource) == "" {
		return models.ListResult{}, ErrEmptyResource
	}

	countQuery, countArgs, err := countRecordsQuery(r.db.dialect, req)
	if err != nil {
		return models.ListResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*recordRepository.List").Str("pg_code", postgresError(err)).Msg("error counting records")
		return models.ListResult{}, r.db.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}

	listQuery, listArgs, err := listRecordsQuery(r.db.dialect, req)
	if err != nil {
		return models.ListResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.List").Str("pg_code", postgresError(err)).Msg("error listing records")
		return models.ListResult{}, r.db.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*recordRepository.List").Msg("error scanning record")
			return models.ListResult{}, scanErr
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*recordRepository.List").Msg("error iterating records")
		return models.ListResult{}, r.db.classify(fmt.Errorf("%w: %w", ErrScanningRows, err))
	}

	return models.ListResult{Records: records, TotalCount: total}, nil
}

// Get implements [RecordRepository].
func (r *recordRepository) Get(ctx context.Context, resource, id string) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := getRecordQuery(r.db.dialect, resource, id)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.Get").Str("pg_code", postgresError(err)).Msg("error getting record")
		return models.Record{}, r.db.classify(err)
	}

	return record, nil
}

// Upsert implements [RecordRepository]. A body without an id field gets
// record.ID; an existing id field is stored as sent.
func (r *recordRepository) Upsert(ctx context.Context, record models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(record.Resource) == "" {
		return models.Record{}, ErrEmptyResource
	}

	record.Body = maps.Clone(record.Body)
	if record.Body == nil {
		record.Body = map[string]any{}
	}
	if _, ok := record.Body[models.RecordIDField]; !ok {
		record.Body[models.RecordIDField] = record.ID
	}

	body, err := json.Marshal(record.Body)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrEncodingBody, err)
	}

	now := r.now()
	record.CreatedAt, record.UpdatedAt = now, now

	query, args, err := upsertRecordQuery(r.db.dialect, record, string(body))
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*recordRepository.Upsert").Str("pg_code", postgresError(err)).Msg("error saving record")
		return models.Record{}, r.db.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	// read back: an existing row keeps its created_at
	return r.Get(ctx, record.Resource, record.ID)
}

// Delete implements [RecordRepository].
func (r *recordRepository) Delete(ctx context.Context, resource, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := deleteRecordQuery(r.db.dialect, resource, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.Delete").Str("pg_code", postgresError(err)).Msg("error deleting record")
		return r.db.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var (
		record models.Record
		body   string
	)

	if err := row.Scan(&record.Resource, &record.ID, &body, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, err
		}
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := json.Unmarshal([]byte(body), &record.Body); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrDecodingBody, err)
	}

	return record, nil
}
