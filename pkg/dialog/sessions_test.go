package dialog_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-urlpicker/pkg/dialog"
	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/picker"
)

func TestSessionsResolveExactlyOnce(t *testing.T) {
	table := dialog.NewSessions()
	var commits, cancels int
	var mu sync.Mutex
	session := picker.Session{FieldID: "cta", Handle: "h1"}
	err := table.Add(session,
		func(link.Value) { mu.Lock(); commits++; mu.Unlock() },
		func() { mu.Lock(); cancels++; mu.Unlock() },
	)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); _ = table.Resolve("h1", link.Value{URL: "/x"}) }()
		go func() { defer wg.Done(); _ = table.Dismiss("h1") }()
	}
	wg.Wait()

	if commits+cancels != 1 {
		t.Fatalf("expected exactly one continuation, got commits=%d cancels=%d", commits, cancels)
	}
	if err := table.Resolve("h1", link.Empty()); !errors.Is(err, dialog.ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
}

func TestSessionsDropAndPending(t *testing.T) {
	table := dialog.NewSessions()
	noop := func(link.Value) {}
	for _, h := range []picker.SessionHandle{"b", "a", "c"} {
		if err := table.Add(picker.Session{Handle: h}, noop, func() {}); err != nil {
			t.Fatalf("add %s: %v", h, err)
		}
	}
	table.Drop("b")

	if diff := cmp.Diff([]picker.SessionHandle{"a", "c"}, table.Pending()); diff != "" {
		t.Fatalf("pending mismatch (-want +got):\n%s", diff)
	}
	if _, ok := table.Lookup("b"); ok {
		t.Fatalf("dropped session still visible")
	}
	if err := table.Dismiss("b"); !errors.Is(err, dialog.ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession for dropped session, got %v", err)
	}
}

func TestSessionsAddValidates(t *testing.T) {
	table := dialog.NewSessions()
	if err := table.Add(picker.Session{}, func(link.Value) {}, func() {}); err == nil {
		t.Fatalf("expected error for missing handle")
	}
	if err := table.Add(picker.Session{Handle: "h"}, nil, func() {}); err == nil {
		t.Fatalf("expected error for missing commit continuation")
	}
}
