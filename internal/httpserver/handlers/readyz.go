package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/goliatone/go-urlpicker/internal/httpserver/deps"
	"github.com/goliatone/go-urlpicker/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz reports whether the field store answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			err := d.Ready(ctx)
			cancel()
			if err != nil {
				d.Logger.Warn("readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(readyzResponse{Ready: false, Error: "store unavailable"})
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(readyzResponse{Ready: true})
	}
}
