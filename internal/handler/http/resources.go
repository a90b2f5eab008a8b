package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flicsl/jsonsync/internal/service"
	"github.com/flicsl/jsonsync/internal/utils"
	"github.com/flicsl/jsonsync/models"
	"github.com/go-chi/chi/v5"
)

// Query parameters understood by the list endpoint. Every other parameter
// not starting with "_" filters on the body field of the same name.
const (
	textSearchParam = "q"
	startParam      = "_start"
	limitParam      = "_limit"
)

type deleteResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	req, err := listRequestFrom(chi.URLParam(r, resourceParam), r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.ResourceService.List(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	bodies := make([]map[string]any, 0, len(result.Records))
	for _, record := range result.Records {
		bodies = append(bodies, record.Body)
	}

	utils.WritePage(w, bodies, result.TotalCount)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.services.ResourceService.Get(r.Context(), chi.URLParam(r, resourceParam), chi.URLParam(r, idParam))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, record.Body, http.StatusOK)
}

func (h *Handler) putRecord(w http.ResponseWriter, r *http.Request) {
	// numbers stay exact, ids included
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var body map[string]any
	if err := decoder.Decode(&body); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSONBody, err))
		return
	}
	if body == nil {
		h.writeError(w, r, ErrInvalidJSONBody)
		return
	}

	record, err := h.services.ResourceService.Put(r.Context(), chi.URLParam(r, resourceParam), body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, record.Body, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	err := h.services.ResourceService.Delete(r.Context(), chi.URLParam(r, resourceParam), chi.URLParam(r, idParam))
	if errors.Is(err, service.ErrRecordNotFound) {
		utils.WriteJSON(w, deleteResponse{Success: false}, http.StatusNotFound)
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, deleteResponse{Success: true}, http.StatusOK)
}

// listRequestFrom reads the list window, text search and field filters from
// query. Repeated filter parameters use their first value.
func listRequestFrom(resource string, query url.Values) (models.ListRequest, error) {
	req := models.ListRequest{
		Resource:   resource,
		TextSearch: query.Get(textSearchParam),
		Filters:    make(map[string]string),
	}

	var err error
	if req.Start, err = nonNegativeInt(query, startParam); err != nil {
		return models.ListRequest{}, err
	}
	if req.Limit, err = nonNegativeInt(query, limitParam); err != nil {
		return models.ListRequest{}, err
	}

	for key, values := range query {
		if key == textSearchParam || strings.HasPrefix(key, "_") || len(values) == 0 {
			continue
		}
		req.Filters[key] = values[0]
	}

	return req, nil
}

func nonNegativeInt(query url.Values, key string) (int, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, key, raw)
	}
	return n, nil
}
