package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when no record with the requested
	// resource and id exists.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrTemporarilyUnavailable wraps driver errors classified as
	// [Retryable]: the same request may succeed later.
	ErrTemporarilyUnavailable = errors.New("storage temporarily unavailable")

	// ErrEmptyResource is returned when a repository call names no resource.
	ErrEmptyResource = errors.New("empty resource name")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to executing statement")
	ErrScanningRow        = errors.New("failed to scan record row")
	ErrScanningRows       = errors.New("failed to scan record rows")

	// ErrEncodingBody and ErrDecodingBody report a record body that could not
	// be converted to or from its stored JSON text.
	ErrEncodingBody = errors.New("failed to encode record body")
	ErrDecodingBody = errors.New("failed to decode record body")
)
