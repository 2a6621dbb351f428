package components_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/model"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/render/template/gotemplate"
	"github.com/goliatone/go-urlpicker/pkg/renderers/vanilla"
	"github.com/goliatone/go-urlpicker/pkg/renderers/vanilla/components"
)

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(gotemplate.WithFS(vanilla.TemplatesFS()))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return engine
}

func renderPicker(t *testing.T, value link.Value, state picker.State, config map[string]any) string {
	t.Helper()
	view := picker.BuildView("cta", value, state, picker.DefaultLabels(), "https://example.com")
	var buf bytes.Buffer
	err := components.URLPickerRenderer(&buf, model.Field{Name: "cta", Type: model.FieldTypeLink}, components.ComponentData{
		Template: newEngine(t),
		View:     &view,
		Config:   config,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestURLPickerRendersSelectForEmptyValue(t *testing.T) {
	out := renderPicker(t, link.Empty(), picker.Closed, nil)

	for _, want := range []string{
		`data-urlpicker-select`,
		`>Select link</button>`,
		`data-state="closed"`,
		`<input type="hidden" name="cta[url]" value="">`,
		`<input type="hidden" name="cta[anchor]" value="">`,
		`<input type="hidden" name="cta[blank]" value="0">`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "urlpicker-summary") {
		t.Fatalf("summary must not render for empty value:\n%s", out)
	}
}

func TestURLPickerRendersSummaryForValue(t *testing.T) {
	value := link.Value{URL: "https://example.com/about", AnchorText: "About <b>us</b>", OpenInNewTab: true}
	out := renderPicker(t, value, picker.Closed, map[string]any{components.ConfigEndpoint: "/urlpicker/"})

	for _, want := range []string{
		`class="urlpicker-summary" data-is-blank="1"`,
		`href="https://example.com/about"`,
		`>/about</a>`,
		`<small class="urlpicker-anchor">About us</small>`,
		`title="Remove link"`,
		`data-endpoint="/urlpicker"`,
		`<input type="hidden" name="cta[url]" value="https://example.com/about">`,
		`<input type="hidden" name="cta[blank]" value="1">`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "data-urlpicker-select") {
		t.Fatalf("select button must not render for a value:\n%s", out)
	}
}

func TestURLPickerMarksBusyState(t *testing.T) {
	out := renderPicker(t, link.Empty(), picker.EnsuringDialogLoaded, nil)
	if !strings.Contains(out, "is-busy") || !strings.Contains(out, `data-state="ensuring_dialog_loaded"`) {
		t.Fatalf("expected busy markers:\n%s", out)
	}
	if !strings.Contains(out, " disabled>") {
		t.Fatalf("expected disabled select button:\n%s", out)
	}
}

func TestURLPickerNeutralisesScriptURLs(t *testing.T) {
	out := renderPicker(t, link.Value{URL: "javascript:alert(1)"}, picker.Closed, nil)
	if !strings.Contains(out, `href="#"`) {
		t.Fatalf("expected neutral href:\n%s", out)
	}
}

func TestURLPickerRequiresView(t *testing.T) {
	var buf bytes.Buffer
	err := components.URLPickerRenderer(&buf, model.Field{Name: "cta"}, components.ComponentData{Template: newEngine(t)})
	if !errors.Is(err, components.ErrViewRequired) {
		t.Fatalf("expected ErrViewRequired, got %v", err)
	}
}

func TestURLPickerUsesThemePartial(t *testing.T) {
	recorder := &recordingTemplateRenderer{}
	view := picker.BuildView("cta", link.Empty(), picker.Closed, picker.DefaultLabels(), "")
	var buf bytes.Buffer
	err := components.URLPickerRenderer(&buf, model.Field{Name: "cta"}, components.ComponentData{
		Template: recorder,
		View:     &view,
		Theme: &theme.RendererConfig{
			Theme:    "acme",
			Partials: map[string]string{components.PartialURLPicker: "themes/acme/urlpicker.tpl"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(recorder.calls) != 1 || recorder.calls[0] != "themes/acme/urlpicker.tpl" {
		t.Fatalf("theme partial not applied, got %v", recorder.calls)
	}
}

type recordingTemplateRenderer struct {
	calls []string
}

func (r *recordingTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	r.calls = append(r.calls, name)
	return "", nil
}

func (r *recordingTemplateRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplateRenderer) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	return nil
}

func (r *recordingTemplateRenderer) GlobalContext(data any) error {
	return nil
}
