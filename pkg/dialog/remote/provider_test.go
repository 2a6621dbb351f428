package remote_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-urlpicker/pkg/dialog"
	"github.com/goliatone/go-urlpicker/pkg/dialog/remote"
	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/store"
)

const fragment = `<!doctype html><html><body>
<div id="urlpicker-link-wrap" class="urlpicker-dialog" role="dialog">
  <form method="post">
    <label for="urlpicker-url">URL</label>
    <input id="urlpicker-url" type="url" name="url" value="">
    <input id="urlpicker-blank" type="checkbox" name="blank" value="1">
    <button type="submit">Save</button>
    <script>alert(1)</script>
  </form>
</div>
</body></html>`

func fragmentServer(t *testing.T, body string, status int) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestProviderEnsureLoadedFetchesOnce(t *testing.T) {
	srv, hits := fragmentServer(t, fragment, http.StatusOK)
	p, err := remote.New(srv.URL, remote.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.EnsureLoaded(context.Background()); err != nil {
				t.Errorf("EnsureLoaded: %v", err)
			}
		}()
	}
	wg.Wait()

	if err := p.EnsureLoaded(context.Background()); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}
	if got := atomic.LoadInt32(hits); got != 1 {
		t.Fatalf("expected a single fetch, got %d", got)
	}
	if !p.Loaded() {
		t.Fatalf("expected provider to be loaded")
	}

	markup := p.Fragment()
	if !strings.Contains(markup, `id="urlpicker-link-wrap"`) {
		t.Fatalf("fragment root missing: %s", markup)
	}
	if !strings.Contains(markup, `name="blank"`) {
		t.Fatalf("form controls stripped: %s", markup)
	}
	if strings.Contains(markup, "<script") || strings.Contains(markup, "<body") {
		t.Fatalf("fragment not sanitised: %s", markup)
	}
}

func TestProviderEnsureLoadedRetriesAfterFailure(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(fragment))
	}))
	t.Cleanup(srv.Close)

	p, err := remote.New(srv.URL, remote.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.EnsureLoaded(context.Background()); err == nil {
		t.Fatalf("expected first load to fail")
	}
	if p.Loaded() {
		t.Fatalf("failed load must leave provider unloaded")
	}
	if err := p.EnsureLoaded(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("expected two fetches, got %d", got)
	}
}

func TestProviderEnsureLoadedRequiresRoot(t *testing.T) {
	srv, _ := fragmentServer(t, `<div id="other"></div>`, http.StatusOK)
	p, err := remote.New(srv.URL, remote.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = p.EnsureLoaded(context.Background())
	if !errors.Is(err, remote.ErrRootMissing) {
		t.Fatalf("expected ErrRootMissing, got %v", err)
	}
}

func TestProviderCustomRootSelector(t *testing.T) {
	srv, _ := fragmentServer(t, `<section><div id="custom-wrap"><input name="url"></div></section>`, http.StatusOK)
	p, err := remote.New(srv.URL,
		remote.WithHTTPClient(srv.Client()),
		remote.WithRootSelector("#custom-wrap"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.EnsureLoaded(context.Background()); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}
	if strings.Contains(p.Fragment(), "<section") {
		t.Fatalf("expected only the root element, got %s", p.Fragment())
	}
}

func TestProviderWithFragmentSkipsFetch(t *testing.T) {
	p, err := remote.New("", remote.WithFragment(fragment))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.EnsureLoaded(context.Background()); err != nil {
		t.Fatalf("EnsureLoaded: %v", err)
	}

	if _, err := remote.New(""); err == nil {
		t.Fatalf("expected error without fragment url")
	}
}

func TestProviderOpenRequiresLoad(t *testing.T) {
	srv, _ := fragmentServer(t, fragment, http.StatusOK)
	p, err := remote.New(srv.URL, remote.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	session := picker.Session{FieldID: "cta", Handle: "h-1", State: picker.Open}
	err = p.Open(context.Background(), session, func(link.Value) {}, func() {})
	if !errors.Is(err, remote.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestProviderResolveAndDismiss(t *testing.T) {
	p, err := remote.New("", remote.WithFragment(fragment))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var committed []link.Value
	cancelled := 0
	onCommit := func(v link.Value) { committed = append(committed, v) }
	onCancel := func() { cancelled++ }

	for _, handle := range []picker.SessionHandle{"a", "b", "c"} {
		session := picker.Session{FieldID: "f-" + string(handle), Handle: handle, State: picker.Open}
		if err := p.Open(context.Background(), session, onCommit, onCancel); err != nil {
			t.Fatalf("Open %s: %v", handle, err)
		}
	}

	if session, ok := p.Lookup("b"); !ok || session.FieldID != "f-b" {
		t.Fatalf("Lookup(b) = %+v, %v", session, ok)
	}

	want := link.Value{URL: "https://example.com", AnchorText: "Example", OpenInNewTab: true}
	if err := p.Resolve("a", want); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := p.Resolve("a", want); !errors.Is(err, dialog.ErrUnknownSession) {
		t.Fatalf("second Resolve: expected ErrUnknownSession, got %v", err)
	}
	if err := p.Dismiss("b"); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	p.Close("c")
	if err := p.Dismiss("c"); !errors.Is(err, dialog.ErrUnknownSession) {
		t.Fatalf("Dismiss after Close: expected ErrUnknownSession, got %v", err)
	}

	if diff := cmp.Diff([]link.Value{want}, committed); diff != "" {
		t.Fatalf("committed mismatch (-want +got):\n%s", diff)
	}
	if cancelled != 1 {
		t.Fatalf("expected one cancel, got %d", cancelled)
	}
	if len(p.Pending()) != 0 {
		t.Fatalf("expected no pending sessions, got %v", p.Pending())
	}
}

func TestProviderReleasedAfterControllerCommit(t *testing.T) {
	p, err := remote.New("", remote.WithFragment(fragment))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := store.NewMemory(nil)
	ctrl, err := picker.New(st, p, picker.WithHandleFunc(func() picker.SessionHandle { return "h-1" }))
	if err != nil {
		t.Fatalf("picker.New: %v", err)
	}
	ctx := context.Background()

	if _, err := ctrl.Open(ctx, "cta", link.Empty()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := ctrl.Commit(ctx, "cta", link.Value{URL: "/a"}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if pending := p.Pending(); len(pending) != 0 {
		t.Fatalf("expected no pending sessions after commit, got %v", pending)
	}
	if err := p.Resolve("h-1", link.Value{URL: "/late"}); !errors.Is(err, dialog.ErrUnknownSession) {
		t.Fatalf("late Resolve: expected ErrUnknownSession, got %v", err)
	}
	got, _ := st.Get(ctx, "cta")
	if diff := cmp.Diff(link.Value{URL: "/a"}, got); diff != "" {
		t.Fatalf("stored mismatch (-want +got):\n%s", diff)
	}
}
