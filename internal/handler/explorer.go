package handler

import (
	_ "embed"
	"net/http"
)

//go:embed gql.html
var explorerPage []byte

// ServeExplorer serves the interactive API explorer page.
func ServeExplorer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(explorerPage); err != nil {
			return
		}
	}
}
