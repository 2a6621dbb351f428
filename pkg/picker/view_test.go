package picker_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/render"
)

func TestBuildViewAffordance(t *testing.T) {
	values := []link.Value{
		link.Empty(),
		{AnchorText: "dangling anchor", OpenInNewTab: true},
		{URL: "/about"},
		{URL: "https://example.com/docs", AnchorText: "Docs", OpenInNewTab: true},
		{URL: " "},
	}
	for _, value := range values {
		view := picker.BuildView("cta", value, picker.Closed, picker.DefaultLabels(), "")
		wantSummary := value.URL != ""
		if (view.Affordance == picker.AffordanceSummary) != wantSummary {
			t.Fatalf("value %+v: affordance %s, want summary=%v", value, view.Affordance, wantSummary)
		}
		if (view.Affordance == picker.AffordanceSelect) == wantSummary {
			t.Fatalf("value %+v: select affordance mismatch", value)
		}
		if view.HasValue != wantSummary {
			t.Fatalf("value %+v: HasValue=%v", value, view.HasValue)
		}
	}
}

func TestBuildViewSummaryDetails(t *testing.T) {
	value := link.Value{URL: "https://example.com/pricing", AnchorText: "<em>Plans</em>", OpenInNewTab: true}
	view := picker.BuildView("cta", value, picker.Open, picker.Labels{SelectLink: "Choisir", RemoveLink: "Retirer"}, "https://example.com")

	want := picker.View{
		FieldID:      "cta",
		State:        picker.Open,
		Busy:         true,
		HasValue:     true,
		Affordance:   picker.AffordanceSummary,
		URL:          "https://example.com/pricing",
		DisplayURL:   "/pricing",
		AnchorText:   "Plans",
		OpenInNewTab: true,
		Labels:       picker.Labels{SelectLink: "Choisir", RemoveLink: "Retirer"},
		Hidden: []render.HiddenField{
			{Name: "cta[url]", Value: "https://example.com/pricing"},
			{Name: "cta[anchor]", Value: "<em>Plans</em>"},
			{Name: "cta[blank]", Value: "1"},
		},
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestControllerRenderReflectsState(t *testing.T) {
	dialog := &fakeDialog{}
	ctrl := newController(t, newFakeStore(), dialog, picker.WithLabels(picker.Labels{SelectLink: "Pick"}))

	before := ctrl.Render("cta", link.Empty())
	if before.State != picker.Closed || before.Busy || before.Labels.SelectLink != "Pick" || before.Labels.RemoveLink != "Remove link" {
		t.Fatalf("unexpected initial view: %+v", before)
	}

	if _, err := ctrl.Open(context.Background(), "cta", link.Empty()); err != nil {
		t.Fatalf("open: %v", err)
	}
	during := ctrl.Render("cta", link.Empty())
	if during.State != picker.Open || !during.Busy {
		t.Fatalf("expected busy open view, got %+v", during)
	}
}

func TestStateStrings(t *testing.T) {
	got := []string{picker.Closed.String(), picker.EnsuringDialogLoaded.String(), picker.Open.String(), picker.Committing.String(), picker.State(42).String()}
	want := []string{"closed", "ensuring_dialog_loaded", "open", "committing", "unknown"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state strings mismatch (-want +got):\n%s", diff)
	}
}
