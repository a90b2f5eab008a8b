// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/flicsl/jsonsync/internal/app"
	"github.com/go-chi/chi/v5"
)

var routedMethods = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodPatch,
	http.MethodDelete,
}

// CheckHTTPMethod returns the router's MethodNotAllowed handler. It answers
// 405 with an Allow header listing the methods the matched route does serve,
// and a JSON message body like every other error of the API.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := make([]string, 0, len(routedMethods))
		for _, method := range routedMethods {
			if router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}

		if len(allowed) == 0 {
			writeMessage(w, http.StatusNotFound, app.MsgRouteNotFound)
			return
		}

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		writeMessage(w, http.StatusMethodNotAllowed, fmt.Sprintf(app.MsgMethodNotAllowed, r.Method))
	}
}
