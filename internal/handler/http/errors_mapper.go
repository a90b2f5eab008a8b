package http

import (
	"errors"
	"net/http"

	"github.com/flicsl/jsonsync/internal/app"
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/internal/service"
	"github.com/flicsl/jsonsync/internal/store"
	"github.com/flicsl/jsonsync/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSONBody:   http.StatusBadRequest,
	ErrInvalidQueryParam: http.StatusBadRequest,

	service.ErrInvalidDataProvided:    http.StatusBadRequest,
	service.ErrRecordNotFound:         http.StatusNotFound,
	service.ErrTemporarilyUnavailable: http.StatusServiceUnavailable,

	store.ErrEmptyResource:      http.StatusBadRequest,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
	store.ErrEncodingBody:       http.StatusInternalServerError,
	store.ErrDecodingBody:       http.StatusInternalServerError,
}

// statusPriority resolves errors matching several targets: a retryable
// storage failure wraps ErrExecutingQuery too but must answer 503.
var statusPriority = []int{
	http.StatusServiceUnavailable,
	http.StatusNotFound,
	http.StatusBadRequest,
}

func statusFromError(err error) int {
	matched := make(map[int]bool)
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			matched[status] = true
		}
	}

	for _, status := range statusPriority {
		if matched[status] {
			return status
		}
	}
	return http.StatusInternalServerError
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	utils.WriteJSON(w, messageResponse{Message: message}, status)
}

// writeError answers with the status mapped from err. Internal failures are
// logged and reported without their details.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = app.MsgInternalServerError
	}

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	writeMessage(w, status, message)
}
