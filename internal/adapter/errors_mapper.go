package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	sentinel, ok := statusErrors[resp.StatusCode()]
	if !ok {
		sentinel = ErrUnexpectedStatus
	}

	return &RequestError{
		StatusCode: resp.StatusCode(),
		Payload:    decodePayload(resp.Body()),
		Err:        sentinel,
	}
}

// decodePayload returns body as a JSON value, falling back to the trimmed
// text. An empty body yields nil.
func decodePayload(body []byte) any {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return nil
	}

	var payload any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return text
	}

	return payload
}
