package store

import (
	"maps"
	"math"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/flicsl/jsonsync/models"
)

const recordsTable = "records"

var recordColumns = []string{"resource", "id", "body", "created_at", "updated_at"}

const upsertRecordSuffix = `ON CONFLICT (resource, id) DO UPDATE
		SET body = excluded.body, updated_at = excluded.updated_at`

// recordsFilter builds the WHERE clause shared by list and count queries.
// Filter keys are applied in sorted order so the generated SQL is stable.
func recordsFilter(dialect Dialect, req models.ListRequest) sq.And {
	where := sq.And{sq.Eq{"resource": req.Resource}}

	if q := strings.TrimSpace(req.TextSearch); q != "" {
		where = append(where, textSearchMatch(dialect, q))
	}

	for _, field := range slices.Sorted(maps.Keys(req.Filters)) {
		where = append(where, jsonFieldEq(dialect, field, req.Filters[field]))
	}

	return where
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// textSearchMatch matches q case-insensitively against the scalar values
// anywhere in the body. Keys and JSON punctuation never match, and LIKE
// wildcards in q are literal.
func textSearchMatch(dialect Dialect, q string) sq.Sqlizer {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
	if dialect == DialectPostgres {
		return sq.Expr(`EXISTS (SELECT 1 FROM jsonb_path_query(body::jsonb, 'strict $.**') AS v(val) `+
			`WHERE jsonb_typeof(v.val) NOT IN ('object', 'array', 'null') `+
			`AND LOWER(v.val #>> '{}') LIKE ? ESCAPE '\')`, pattern)
	}
	return sq.Expr(`EXISTS (SELECT 1 FROM json_tree(records.body) `+
		`WHERE type NOT IN ('object', 'array', 'null') `+
		`AND LOWER(CAST(value AS TEXT)) LIKE ? ESCAPE '\')`, pattern)
}

// jsonFieldEq compares a top-level body field, rendered as text, with value.
func jsonFieldEq(dialect Dialect, field, value string) sq.Sqlizer {
	if dialect == DialectPostgres {
		return sq.Expr("(body::jsonb ->> ?) = ?", field, value)
	}
	return sq.Expr("CAST(json_extract(body, ?) AS TEXT) = ?", `$."`+field+`"`, value)
}

func listRecordsQuery(dialect Dialect, req models.ListRequest) (string, []any, error) {
	query := statementBuilder(dialect).
		Select(recordColumns...).
		From(recordsTable).
		Where(recordsFilter(dialect, req)).
		OrderBy("created_at", "id")

	switch {
	case req.Limit > 0:
		query = query.Limit(uint64(req.Limit))
	case req.Start > 0:
		// OFFSET needs a LIMIT in sqlite
		query = query.Limit(math.MaxInt64)
	}
	if req.Start > 0 {
		query = query.Offset(uint64(req.Start))
	}

	return query.ToSql()
}

func countRecordsQuery(dialect Dialect, req models.ListRequest) (string, []any, error) {
	return statementBuilder(dialect).
		Select("COUNT(*)").
		From(recordsTable).
		Where(recordsFilter(dialect, req)).
		ToSql()
}

func getRecordQuery(dialect Dialect, resource, id string) (string, []any, error) {
	return statementBuilder(dialect).
		Select(recordColumns...).
		From(recordsTable).
		Where(sq.And{sq.Eq{"resource": resource}, sq.Eq{"id": id}}).
		ToSql()
}

func upsertRecordQuery(dialect Dialect, record models.Record, body string) (string, []any, error) {
	return statementBuilder(dialect).
		Insert(recordsTable).
		Columns(recordColumns...).
		Values(record.Resource, record.ID, body, record.CreatedAt, record.UpdatedAt).
		Suffix(upsertRecordSuffix).
		ToSql()
}

func deleteRecordQuery(dialect Dialect, resource, id string) (string, []any, error) {
	return statementBuilder(dialect).
		Delete(recordsTable).
		Where(sq.And{sq.Eq{"resource": resource}, sq.Eq{"id": id}}).
		ToSql()
}
