package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/store"
)

var _ picker.Store = (*store.Memory)(nil)

func TestMemoryReadAfterWrite(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(map[string]link.Value{
		" hero ": {URL: "/"},
		"":       {URL: "/dropped"},
	})

	got, err := mem.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Equal(link.Empty()) {
		t.Fatalf("expected empty value for missing field, got %+v", got)
	}

	value := link.Value{URL: "https://example.com", AnchorText: "Example", OpenInNewTab: true}
	if err := mem.Set(ctx, "cta", value); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ = mem.Get(ctx, "cta")
	if diff := cmp.Diff(value, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	fields, err := mem.Fields(context.Background())
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if diff := cmp.Diff([]string{"cta", "hero"}, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryRejectsBlankIDAndCancelledContext(t *testing.T) {
	mem := store.NewMemory(nil)
	if err := mem.Set(context.Background(), " ", link.Empty()); !errors.Is(err, store.ErrFieldIDRequired) {
		t.Fatalf("expected ErrFieldIDRequired, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := mem.Set(ctx, "cta", link.Empty()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
