// Package site serves the embedded static assets of the dashboard page.
package site

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// Prefix is the URL path the assets are mounted at.
const Prefix = "/static/"

// Register attaches the embedded static assets under /static/ to r.
func Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}

	files := http.StripPrefix(Prefix, http.FileServer(FS()))
	r.PathPrefix(Prefix).Handler(files).Methods(http.MethodGet, http.MethodHead)
}
