package components

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/model"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry constructs a registry with the built-in components.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer(PartialInput, templatePrefix+"input.tpl"),
	})
	registry.MustRegister(NameToggle, Descriptor{
		Renderer: templateComponentRenderer(PartialToggle, templatePrefix+"toggle.tpl"),
	})
	registry.MustRegister(NameURLPicker, Descriptor{
		Renderer: URLPickerRenderer,
		Scripts:  []Script{{Src: RuntimeScript, Defer: true}},
	})

	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := data.Partial(partialKey, templateName)
		payload := map[string]any{
			"field":   field,
			"control": map[string]any{
				"id":      ControlID(field.Name),
				"value":   scalar(data.Value),
				"checked": link.Truthy(data.Value),
			},
			"config":  data.Config,
		}
		rendered, err := data.Template.RenderTemplate(resolvedTemplate, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolvedTemplate, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// ControlID is the DOM id of the control rendered for a field.
func ControlID(name string) string {
	if name == "" {
		return ""
	}
	return "urlpicker-field-" + name
}

func scalar(value any) any {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
