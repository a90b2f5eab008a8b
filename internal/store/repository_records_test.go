// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRecordRepo(t *testing.T, dialect Dialect) (*recordRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var classifier ErrorClassificator = NewSQLiteErrorClassifier()
	if dialect == DialectPostgres {
		classifier = NewPostgresErrorClassifier()
	}

	l := logger.Nop()
	repo := &recordRepository{
		db:     &DB{DB: db, dialect: dialect, errorClassificator: classifier, logger: l},
		now:    func() time.Time { return fixedNow },
		logger: l,
	}
	return repo, mock
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows(recordColumns)
}

// ── List ────────────────────────────────────────────────────────────────────

func TestRecordRepository_List(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectSQLite)

	req := models.ListRequest{Resource: "books", TextSearch: "Dune", Start: 0, Limit: 2}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM records WHERE`).
		WithArgs("books", "%dune%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT resource, id, body, created_at, updated_at FROM records WHERE .* ORDER BY created_at, id LIMIT 2`).
		WithArgs("books", "%dune%").
		WillReturnRows(recordRows().
			AddRow("books", "b1", `{"id":"b1","title":"Dune"}`, fixedNow, fixedNow).
			AddRow("books", "b2", `{"id":"b2","title":"Dune Messiah"}`, fixedNow, fixedNow))

	result, err := repo.List(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalCount)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "b1", result.Records[0].ID)
	assert.Equal(t, "Dune Messiah", result.Records[1].Body["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_List_Empty(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectSQLite)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM records`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT resource, id, body`).
		WillReturnRows(recordRows())

	result, err := repo.List(context.Background(), models.ListRequest{Resource: "books"})
	require.NoError(t, err)
	assert.NotNil(t, result.Records)
	assert.Empty(t, result.Records)
	assert.Zero(t, result.TotalCount)
}

func TestRecordRepository_List_EmptyResource(t *testing.T) {
	repo, _ := newTestRecordRepo(t, DialectSQLite)

	_, err := repo.List(context.Background(), models.ListRequest{Resource: "  "})
	assert.ErrorIs(t, err, ErrEmptyResource)
}

func TestRecordRepository_List_RetryableError(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM records`).
		WithArgs("books").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})

	_, err := repo.List(context.Background(), models.ListRequest{Resource: "books"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemporarilyUnavailable)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestRecordRepository_List_NonRetryableError(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM records`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UndefinedTable})

	_, err := repo.List(context.Background(), models.ListRequest{Resource: "books"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTemporarilyUnavailable))
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestRecordRepository_List_BadBody(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectSQLite)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM records`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT resource, id, body`).
		WillReturnRows(recordRows().AddRow("books", "b1", `not json`, fixedNow, fixedNow))

	_, err := repo.List(context.Background(), models.ListRequest{Resource: "books"})
	assert.ErrorIs(t, err, ErrDecodingBody)
}

// ── Get ─────────────────────────────────────────────────────────────────────

func TestRecordRepository_Get(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectSQLite)

	mock.ExpectQuery(`SELECT resource, id, body, created_at, updated_at FROM records WHERE \(resource = \? AND id = \?\)`).
		WithArgs("books", "b1").
		WillReturnRows(recordRows().AddRow("books", "b1", `{"id":"b1","pages":412}`, fixedNow, fixedNow))

	record, err := repo.Get(context.Background(), "books", "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", record.ID)
	assert.Equal(t, float64(412), record.Body["pages"])
	assert.Equal(t, fixedNow, record.CreatedAt)
}

func TestRecordRepository_Get_NotFound(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectSQLite)

	mock.ExpectQuery(`SELECT resource, id, body`).
		WithArgs("books", "missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "books", "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

// ── Upsert ──────────────────────────────────────────────────────────────────

func TestRecordRepository_Upsert(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	created := fixedNow.Add(-time.Hour)
	mock.ExpectExec(`INSERT INTO records \(resource,id,body,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4,\$5\) ON CONFLICT \(resource, id\) DO UPDATE`).
		WithArgs("books", "b1", `{"id":"b1","title":"Dune"}`, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT resource, id, body, created_at, updated_at FROM records WHERE \(resource = \$1 AND id = \$2\)`).
		WithArgs("books", "b1").
		WillReturnRows(recordRows().AddRow("books", "b1", `{"id":"b1","title":"Dune"}`, created, fixedNow))

	body := map[string]any{"title": "Dune"}
	saved, err := repo.Upsert(context.Background(), models.Record{Resource: "books", ID: "b1", Body: body})
	require.NoError(t, err)

	assert.Equal(t, created, saved.CreatedAt)
	assert.Equal(t, fixedNow, saved.UpdatedAt)
	assert.Equal(t, "b1", saved.Body["id"])
	assert.NotContains(t, body, "id", "caller body must not be mutated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Upsert_NilBody(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectSQLite)

	mock.ExpectExec(`INSERT INTO records`).
		WithArgs("books", "b1", `{"id":"b1"}`, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT resource, id, body`).
		WillReturnRows(recordRows().AddRow("books", "b1", `{"id":"b1"}`, fixedNow, fixedNow))

	saved, err := repo.Upsert(context.Background(), models.Record{Resource: "books", ID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "b1"}, saved.Body)
}

func TestRecordRepository_Upsert_Busy(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectSQLite)

	mock.ExpectExec(`INSERT INTO records`).
		WillReturnError(busyError())

	_, err := repo.Upsert(context.Background(), models.Record{Resource: "books", ID: "b1"})
	assert.ErrorIs(t, err, ErrTemporarilyUnavailable)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestRecordRepository_Upsert_EmptyResource(t *testing.T) {
	repo, _ := newTestRecordRepo(t, DialectSQLite)

	_, err := repo.Upsert(context.Background(), models.Record{ID: "b1"})
	assert.ErrorIs(t, err, ErrEmptyResource)
}

// ── Delete ──────────────────────────────────────────────────────────────────

func TestRecordRepository_Delete(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectSQLite)

	mock.ExpectExec(`DELETE FROM records WHERE \(resource = \? AND id = \?\)`).
		WithArgs("books", "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "books", "b1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectSQLite)

	mock.ExpectExec(`DELETE FROM records`).
		WithArgs("books", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "books", "missing"), ErrRecordNotFound)
}

func TestRecordRepository_Delete_ExecError(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectSQLite)

	mock.ExpectExec(`DELETE FROM records`).
		WillReturnError(errors.New("disk I/O error"))

	err := repo.Delete(context.Background(), "books", "b1")
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.False(t, errors.Is(err, ErrTemporarilyUnavailable))
}
