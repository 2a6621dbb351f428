package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/goliatone/go-urlpicker/internal/httpserver/deps"
	"github.com/goliatone/go-urlpicker/pkg/picker"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
	OpenSessions  int     `json:"open_sessions"`
}

type pendingCounter interface {
	Pending() []picker.SessionHandle
}

func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	now := d.TimeNow
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthzResponse{
			Status:        "ok",
			Version:       d.Version,
			UptimeSeconds: now().Sub(start).Seconds(),
		}
		if counter, ok := d.Sessions.(pendingCounter); ok {
			resp.OpenSessions = len(counter.Pending())
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
