package http

import (
	"net/http"

	"github.com/flicsl/jsonsync/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	resourceParam = "resource"
	idParam       = "id"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// set before mounting so the resource subrouter inherits them
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, app.MsgRouteNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	router.Get("/_info", h.getAppInfo)

	router.Route("/{"+resourceParam+"}", func(r chi.Router) {
		r.Get("/", h.listRecords)
		r.Put("/", h.putRecord)
		r.Get("/{"+idParam+"}", h.getRecord)
		r.Delete("/{"+idParam+"}", h.deleteRecord)
	})

	return router
}
