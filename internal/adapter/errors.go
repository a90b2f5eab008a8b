package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned by constructors when a required argument
	// is missing, such as an empty resource path.
	ErrConfiguration = errors.New("configuration error")

	// ErrRequest matches every [*RequestError].
	ErrRequest = errors.New("request error")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	// ErrDecodeResponse is reported when a 2xx body is not valid JSON of the
	// expected shape.
	ErrDecodeResponse = errors.New("cannot decode response")

	// ErrEmptyID is reported by FindOne and Destroy for a blank id.
	ErrEmptyID = errors.New("empty id")
)

// RequestError describes a failed resource request.
//
// StatusCode is zero when no response arrived. Payload holds the decoded
// error body sent by the backend (a JSON value, or the raw text when the body
// is not JSON); it is nil for transport failures. Err is a status sentinel
// such as [ErrNotFound], or the transport error.
type RequestError struct {
	StatusCode int
	Payload    any
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request error: %v", e.Err)
	}
	if e.Payload == nil {
		return fmt.Sprintf("request error: http %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("request error: http %d: %v: %v", e.StatusCode, e.Err, e.Payload)
}

// Unwrap exposes both [ErrRequest] and the underlying cause to [errors.Is].
func (e *RequestError) Unwrap() []error {
	return []error{ErrRequest, e.Err}
}
