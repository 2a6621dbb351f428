package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrapForwardsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := Wrap(zap.New(core)).With(String("component", "picker"))

	log.Debug("transition", String("field", "cta"), Bool("has_value", true))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["component"] != "picker" || ctx["field"] != "cta" || ctx["has_value"] != true {
		t.Fatalf("unexpected context: %#v", ctx)
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("verbose") != nil {
		t.Fatalf("expected unknown level to be ignored")
	}
	if lvl := parseLevel("warn"); lvl == nil || lvl.String() != "warn" {
		t.Fatalf("unexpected level: %v", lvl)
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Info("ignored")
	if err := log.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
}
