package widgets

import (
	"testing"

	"github.com/goliatone/go-urlpicker/pkg/model"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Type: model.FieldTypeLink,
		Metadata: map[string]string{
			"widget": "custom-link",
		},
	}

	if got, ok := reg.Resolve(field); !ok || got != "custom-link" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect string
	}{
		{name: "link type", field: model.Field{Type: model.FieldTypeLink}, expect: WidgetURLPicker},
		{name: "uri format", field: model.Field{Type: model.FieldTypeString, Format: "uri"}, expect: WidgetURLPicker},
		{name: "url format untyped", field: model.Field{Format: "URL"}, expect: WidgetURLPicker},
		{name: "link format", field: model.Field{Type: model.FieldTypeString, Format: " link "}, expect: WidgetURLPicker},
		{name: "boolean toggle", field: model.Field{Type: model.FieldTypeBoolean}, expect: WidgetToggle},
		{name: "plain string", field: model.Field{Type: model.FieldTypeString}, expect: WidgetInput},
		{name: "boolean with uri format", field: model.Field{Type: model.FieldTypeBoolean, Format: "uri"}, expect: WidgetToggle},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(tc.field)
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register("custom", 999, func(field model.Field) bool {
		return field.Type == model.FieldTypeLink
	})

	got, ok := reg.Resolve(model.Field{Type: model.FieldTypeLink})
	if !ok || got != "custom" {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_EmptyRegistry(t *testing.T) {
	reg := &Registry{}
	if got, ok := reg.Resolve(model.Field{Type: model.FieldTypeLink}); ok {
		t.Fatalf("empty registry resolved %q", got)
	}
}

func TestDecorator_AppliesWidgetHints(t *testing.T) {
	reg := NewRegistry()

	form := model.FormModel{
		Fields: []model.Field{
			{Name: "cta", Format: "uri"},
			{Name: "source", Type: model.FieldTypeString, Format: "url"},
			{Name: "enabled", Type: model.FieldTypeBoolean},
			{Name: "footer", Type: model.FieldTypeLink, UIHints: map[string]string{"widget": "special"}},
		},
	}

	if err := model.Apply(&form, reg); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	cta, _ := form.Field("cta")
	if cta.UIHints["widget"] != WidgetURLPicker || cta.Metadata["widget"] != WidgetURLPicker {
		t.Fatalf("cta widget not applied: ui=%q meta=%q", cta.UIHints["widget"], cta.Metadata["widget"])
	}
	if cta.Type != model.FieldTypeLink {
		t.Fatalf("expected untyped url field promoted to link, got %q", cta.Type)
	}

	enabled, _ := form.Field("enabled")
	if enabled.UIHints["widget"] != WidgetToggle {
		t.Fatalf("enabled widget not applied: %q", enabled.UIHints["widget"])
	}

	footer, _ := form.Field("footer")
	if footer.UIHints["widget"] != "special" || footer.Metadata["widget"] != "special" {
		t.Fatalf("explicit widget not preserved: ui=%q meta=%q", footer.UIHints["widget"], footer.Metadata["widget"])
	}

	if got := form.LinkFields(); len(got) != 3 {
		t.Fatalf("expected three link fields, got %v", got)
	}
}
