// Package site handles the embedded landing page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded landing site at / to mux. Paths not found
// in the site, and not claimed by a more specific route, answer 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", http.FileServer(FS()))
}
