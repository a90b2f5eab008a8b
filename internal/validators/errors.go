package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidResource = errors.New("invalid resource name")
	ErrInvalidID       = errors.New("invalid record id")
	ErrEmptyBody       = errors.New("record body is required")
	ErrInvalidWindow   = errors.New("invalid list window")
	ErrInvalidFilter   = errors.New("invalid filter field")
)
