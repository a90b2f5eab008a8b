package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flicsl/jsonsync/internal/config"
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/internal/mock"
	"github.com/flicsl/jsonsync/internal/service"
	"github.com/flicsl/jsonsync/internal/store"
	"github.com/flicsl/jsonsync/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler returns a Handler without services, enough for middleware
// tests.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

// newTestServer serves the full router on top of a mocked record repository.
func newTestServer(t *testing.T) (*httptest.Server, *mock.MockRecordRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockRecordRepository(ctrl)

	services, err := service.NewServices(
		&store.Storages{RecordRepository: repo},
		models.NewAppBuildInfo("1.0.0", "2026-01-01", "abc123"),
		logger.Nop(),
	)
	require.NoError(t, err)

	h := NewHandler(services, config.Server{RequestTimeout: 5 * time.Second}, logger.Nop())
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return srv, repo
}

func doRequest(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}
