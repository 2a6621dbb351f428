package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-urlpicker/pkg/model"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/render/template"
	"github.com/goliatone/go-urlpicker/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-urlpicker/pkg/widgets"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	widgets   *widgets.Registry
	theme     *theme.RendererConfig
	config    map[string]any

	usedComponents map[string]struct{}
}

func (r *componentRenderer) componentFor(field model.Field) string {
	if name := strings.TrimSpace(field.UIHints["widget"]); name != "" {
		return name
	}
	if name, ok := r.widgets.Resolve(field); ok {
		return name
	}
	return components.NameInput
}

func (r *componentRenderer) control(field model.Field, values Values) (string, string, error) {
	componentName := r.componentFor(field)
	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return "", "", fmt.Errorf("component %q not registered for field %q", componentName, field.Name)
	}

	data := components.ComponentData{
		Template: r.templates,
		Theme:    r.theme,
		Value:    values.Data[field.Name],
		Config:   r.config,
	}
	if componentName == components.NameURLPicker {
		view, ok := values.Views[field.Name]
		if !ok {
			view = picker.BuildView(field.Name, values.linkValue(field.Name), picker.Closed, picker.DefaultLabels(), "")
		}
		data.View = &view
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", "", fmt.Errorf("render component %q for field %q: %w", componentName, field.Name, err)
	}
	r.usedComponents[componentName] = struct{}{}
	return componentName, control.String(), nil
}

func (r *componentRenderer) render(field model.Field, values Values) (string, error) {
	componentName, control, err := r.control(field, values)
	if err != nil {
		return "", err
	}
	return buildFieldMarkup(field, componentName, control), nil
}

func (r *componentRenderer) assets() (stylesheets []string, scripts []components.Script) {
	if len(r.usedComponents) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	slices.Sort(names)
	return r.registry.Assets(names)
}

func buildFieldMarkup(field model.Field, componentName, control string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="`)
	builder.WriteString(string(ClassField))
	if cls := strings.TrimSpace(field.UIHints["cssClass"]); cls != "" {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(cls))
	}
	builder.WriteString(`" data-component="`)
	builder.WriteString(html.EscapeString(componentName))
	builder.WriteString("\">\n")

	if label := fieldLabel(field); label != "" && strings.TrimSpace(field.UIHints["hideLabel"]) != "true" {
		builder.WriteString(`  <label class="`)
		builder.WriteString(string(ClassLabel))
		builder.WriteString(`"`)
		if labelSupportsFor(componentName) {
			builder.WriteString(` for="`)
			builder.WriteString(html.EscapeString(components.ControlID(field.Name)))
			builder.WriteString(`"`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(label))
		if field.Required {
			builder.WriteString(` *`)
		}
		builder.WriteString("</label>\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("  ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	description := strings.TrimSpace(field.Description)
	if description == "" {
		description = strings.TrimSpace(field.UIHints["helpText"])
	}
	if description != "" {
		builder.WriteString(`  <small class="`)
		builder.WriteString(string(ClassDescription))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(description))
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>")
	return builder.String()
}

func fieldLabel(field model.Field) string {
	if label := strings.TrimSpace(field.Label); label != "" {
		return label
	}
	return strings.TrimSpace(field.Name)
}

func labelSupportsFor(componentName string) bool {
	return componentName != components.NameURLPicker
}
