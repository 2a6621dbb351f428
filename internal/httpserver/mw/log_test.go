package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-urlpicker/internal/logger"
)

func TestLogRecordsStatusAndBytes(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := Log(logger.Wrap(zap.New(core)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("hello"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/urlpicker/fields/cta/open", nil))

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one access log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusAccepted) || fields["bytes"] != int64(5) {
		t.Fatalf("unexpected fields %#v", fields)
	}
	if fields["path"] != "/urlpicker/fields/cta/open" {
		t.Fatalf("unexpected path %#v", fields["path"])
	}
}

func TestStatusWriterDefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rec}
	_, _ = w.Write([]byte("x"))
	if w.status != http.StatusOK {
		t.Fatalf("expected implicit 200, got %d", w.status)
	}
}
