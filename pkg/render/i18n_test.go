package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-urlpicker/pkg/model"
	"github.com/goliatone/go-urlpicker/pkg/render"
)

func TestLocalizeFormModel_UsesKeysAndFallbacks(t *testing.T) {
	form := model.FormModel{
		ID:       "page",
		Title:    "Edit page",
		Metadata: map[string]string{"titleKey": "forms.page.title"},
		Fields: []model.Field{
			{
				Name:        "cta",
				Label:       "Call to action",
				Placeholder: "Pick a link",
				UIHints: map[string]string{
					"labelKey":       "fields.page.cta",
					"placeholderKey": "fields.page.cta.placeholder",
				},
			},
			{Name: "title", Label: "Title"},
		},
	}

	render.LocalizeFormModel(&form, render.LocalizeOptions{
		Locale: "fr-CA",
		Translator: render.Catalog{
			"fr": {
				"forms.page.title": "Modifier la page",
				"fields.page.cta":  "Appel à l'action",
			},
		},
	})

	if form.Title != "Modifier la page" {
		t.Fatalf("expected translated title, got %q", form.Title)
	}
	want := []string{"Appel à l'action", "Title"}
	got := []string{form.Fields[0].Label, form.Fields[1].Label}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if form.Fields[0].Placeholder != "Pick a link" {
		t.Fatalf("expected placeholder fallback, got %q", form.Fields[0].Placeholder)
	}
}

func TestTranslate_MissingHandler(t *testing.T) {
	var gotErr error
	opts := render.LocalizeOptions{
		Locale: "de",
		OnMissing: func(locale, key string, _ []any, err error) string {
			gotErr = err
			return "[" + locale + ":" + key + "]"
		},
	}
	if got := render.Translate(opts, "urlpicker.select", "Select link"); got != "[de:urlpicker.select]" {
		t.Fatalf("unexpected missing output %q", got)
	}
	if !errors.Is(gotErr, render.ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}

	if got := render.Translate(render.LocalizeOptions{}, "urlpicker.select", "Select link"); got != "Select link" {
		t.Fatalf("expected default fallback, got %q", got)
	}
	if got := render.Translate(render.LocalizeOptions{}, "urlpicker.select", ""); got != "urlpicker.select" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestCatalog(t *testing.T) {
	catalog := render.Catalog{"en": {"greet": "Hello %s"}}
	msg, err := catalog.Translate("en-GB", "greet", "Ada")
	if err != nil || msg != "Hello Ada" {
		t.Fatalf("Translate = %q, %v", msg, err)
	}
	if _, err := catalog.Translate("en", "missing"); !errors.Is(err, render.ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}
