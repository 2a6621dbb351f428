package handlers

import (
	"net/http"

	"github.com/goliatone/go-urlpicker/pkg/renderers/vanilla"
)

// Assets serves the embedded browser runtime under prefix.
func Assets(prefix string) http.Handler {
	files := http.FileServerFS(vanilla.AssetsFS())
	return http.StripPrefix(prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	}))
}
