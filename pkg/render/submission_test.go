package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-urlpicker/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.Hidden("cta[blank]", 1),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing":   "keep",
		"_csrf":      "token123",
		"cta[blank]": "1",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "cta[blank]", Value: "1"},
		{Name: "existing", Value: "keep"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeHiddenFieldsKeepsOrder(t *testing.T) {
	got := render.EncodeHiddenFields([]render.HiddenField{
		{Name: "cta[url]", Value: "https://example.com/?a=1"},
		{Name: "", Value: "dropped"},
		{Name: "cta[anchor]", Value: "Read more"},
	})
	want := "cta%5Burl%5D=https%3A%2F%2Fexample.com%2F%3Fa%3D1&cta%5Banchor%5D=Read+more"
	if got != want {
		t.Fatalf("encoded payload mismatch:\nwant %s\n got %s", want, got)
	}
}

func TestSortedHiddenFieldsEmpty(t *testing.T) {
	if got := render.SortedHiddenFields(map[string]string{" ": "x"}); got != nil {
		t.Fatalf("expected nil for blank names, got %#v", got)
	}
}
