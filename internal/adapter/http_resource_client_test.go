// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flicsl/jsonsync/internal/config"
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/internal/utils"
	"github.com/flicsl/jsonsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client for the "players" resource pointed at the test server
func newTestClient(t *testing.T, serverURL string) ResourceClient {
	t.Helper()
	c, err := NewHTTPResourceClient(config.Adapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, "players", logger.Nop())
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── NewHTTPResourceClient ────────────────────────────────────────────────────

func TestNewHTTPResourceClient_EmptyPath(t *testing.T) {
	for _, path := range []string{"", "   ", "/", " // "} {
		c, err := NewHTTPResourceClient(config.Adapter{HTTPAddress: "localhost:3000"}, path, logger.Nop())

		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrConfiguration, "path %q", path)
	}
}

func TestNewHTTPResourceClient_InvalidAddress(t *testing.T) {
	c, err := NewHTTPResourceClient(config.Adapter{HTTPAddress: ""}, "players", logger.Nop())

	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, utils.ErrEmptyAddress)
}

func TestNewHTTPResourceClient_NormalizesPath(t *testing.T) {
	c, err := NewHTTPResourceClient(config.Adapter{HTTPAddress: "localhost:3000"}, "/players/", nil)

	require.NoError(t, err)
	assert.Equal(t, "/players", c.Path())
}

// ── Find ─────────────────────────────────────────────────────────────────────

func TestFind_SendsWindowAndFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/players", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "ann", q.Get("q"))
		assert.Equal(t, "16", q.Get("_start"))
		assert.Equal(t, "8", q.Get("_limit"))
		assert.Equal(t, "red", q.Get("team"))
		assert.False(t, q.Has("union"))
		assert.False(t, q.Has("textSearch"))

		w.Header().Set(utils.TotalCountHeader, "30")
		writeJSON(t, w, http.StatusOK, []any{map[string]any{"id": "1"}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	page, err := c.Find(context.Background(),
		models.Query{"textSearch": "ann", "team": "red", "union": true},
		models.PageOptions{Page: 2, PageSize: 8},
	)

	require.NoError(t, err)
	assert.Equal(t, []models.Item{map[string]any{"id": "1"}}, page.Items)
	assert.True(t, page.HasTotalCount)
	assert.Equal(t, 30, page.TotalCount)
	assert.Equal(t, "30", page.Header.Get(utils.TotalCountHeader))
}

func TestFind_DefaultWindow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("_start"))
		assert.Equal(t, "10", r.URL.Query().Get("_limit"))
		assert.False(t, r.URL.Query().Has("q"))
		writeJSON(t, w, http.StatusOK, []any{})
	}))
	defer srv.Close()

	page, err := newTestClient(t, srv.URL).Find(context.Background(), nil, models.PageOptions{})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasTotalCount)
}

func TestFind_Envelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"items": []any{"a", "b"},
			"total": 2,
		})
	}))
	defer srv.Close()

	page, err := newTestClient(t, srv.URL).Find(context.Background(), models.Query{}, models.PageOptions{})

	require.NoError(t, err)
	assert.Equal(t, []models.Item{"a", "b"}, page.Items)
	assert.True(t, page.HasTotalCount)
	assert.Equal(t, 2, page.TotalCount)
}

func TestFind_MalformedTotalCountIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(utils.TotalCountHeader, "lots")
		writeJSON(t, w, http.StatusOK, []any{1})
	}))
	defer srv.Close()

	page, err := newTestClient(t, srv.URL).Find(context.Background(), models.Query{}, models.PageOptions{})

	require.NoError(t, err)
	assert.False(t, page.HasTotalCount)
	assert.Equal(t, []models.Item{float64(1)}, page.Items)
}

func TestFind_ServerErrorCarriesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{"message": "boom"})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Find(context.Background(), models.Query{}, models.PageOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequest)
	assert.ErrorIs(t, err, ErrInternalServerError)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, map[string]any{"message": "boom"}, reqErr.Payload)
}

func TestFind_InvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Find(context.Background(), models.Query{}, models.PageOptions{})

	assert.ErrorIs(t, err, ErrRequest)
	assert.ErrorIs(t, err, ErrDecodeResponse)
}

func TestFind_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).Find(context.Background(), models.Query{}, models.PageOptions{})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Zero(t, reqErr.StatusCode)
	assert.Nil(t, reqErr.Payload)
}

func TestFind_ForwardsTraceID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "trace-42", r.Header.Get(utils.TraceIDHeader))
		writeJSON(t, w, http.StatusOK, []any{})
	}))
	defer srv.Close()

	ctx := utils.WithTraceID(context.Background(), "trace-42")
	_, err := newTestClient(t, srv.URL).Find(ctx, models.Query{}, models.PageOptions{})

	require.NoError(t, err)
}

// ── FindOne ──────────────────────────────────────────────────────────────────

func TestFindOne_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/players/42", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{"name": "name"})
	}))
	defer srv.Close()

	item, err := newTestClient(t, srv.URL).FindOne(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "name"}, item)
}

func TestFindOne_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{"message": "record not found"})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FindOne(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, map[string]any{"message": "record not found"}, reqErr.Payload)
}

func TestFindOne_EmptyIDSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FindOne(context.Background(), " ")

	assert.ErrorIs(t, err, ErrEmptyID)
	assert.ErrorIs(t, err, ErrRequest)
	assert.False(t, called)
}

// ── Put ──────────────────────────────────────────────────────────────────────

func TestPut_SendsBodyAndReturnsStored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/players", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"name": "ann"}, body)

		body["id"] = "generated"
		writeJSON(t, w, http.StatusOK, body)
	}))
	defer srv.Close()

	stored, err := newTestClient(t, srv.URL).Put(context.Background(), map[string]any{"name": "ann"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "generated", "name": "ann"}, stored)
}

func TestPut_NoContentReturnsItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	item := map[string]any{"id": "1"}
	stored, err := newTestClient(t, srv.URL).Put(context.Background(), item)

	require.NoError(t, err)
	assert.Equal(t, item, stored)
}

func TestPut_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("body must be a JSON object"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Put(context.Background(), "scalar")

	assert.ErrorIs(t, err, ErrBadRequest)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "body must be a JSON object", reqErr.Payload)
}

// ── Destroy ──────────────────────────────────────────────────────────────────

func TestDestroy_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/players/7", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	ack, err := newTestClient(t, srv.URL).Destroy(context.Background(), "7")

	require.NoError(t, err)
	assert.Equal(t, models.Ack{"success": true}, ack)
}

func TestDestroy_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ack, err := newTestClient(t, srv.URL).Destroy(context.Background(), "7")

	require.NoError(t, err)
	assert.Equal(t, models.Ack{}, ack)
}

func TestDestroy_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{"success": false})
	}))
	defer srv.Close()

	ack, err := newTestClient(t, srv.URL).Destroy(context.Background(), "7")

	assert.Nil(t, ack)
	assert.ErrorIs(t, err, ErrNotFound)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, map[string]any{"success": false}, reqErr.Payload)
}

func TestDestroy_EscapesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/a%2Fb", r.URL.EscapedPath())
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Destroy(context.Background(), "a/b")

	require.NoError(t, err)
}
