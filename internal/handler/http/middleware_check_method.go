// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// hideUnroutedMethods replaces chi's default 405 with a 404, so a request
// hitting a known path with the wrong verb learns nothing about the route
// table. Install via router.MethodNotAllowed.
func hideUnroutedMethods(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !routeAllowsMethod(router, r.URL.Path, r.Method) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		router.ServeHTTP(w, r)
	}
}

// routeAllowsMethod reports whether a route whose pattern exactly equals
// path registers the given method. Parameterised patterns are not expanded.
func routeAllowsMethod(router *chi.Mux, path, method string) bool {
	for _, route := range router.Routes() {
		if route.Pattern != path {
			continue
		}
		_, ok := route.Handlers[method]
		return ok
	}
	return false
}
