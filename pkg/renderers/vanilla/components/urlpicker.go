package components

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-urlpicker/pkg/model"
	"github.com/goliatone/go-urlpicker/pkg/picker"
)

// ConfigEndpoint is the component config key holding the base path of the
// link dialog HTTP component. The browser runtime posts to it.
const ConfigEndpoint = "endpoint"

// ErrViewRequired is returned when a link field is rendered without a view.
var ErrViewRequired = errors.New("components: urlpicker requires a picker view")

// URLPickerRenderer renders a link field from its picker view: either the
// "select link" button or the link summary with its remove control, followed
// by the three hidden inputs carrying the value.
func URLPickerRenderer(buf *bytes.Buffer, field model.Field, data ComponentData) error {
	if data.Template == nil {
		return fmt.Errorf("components: template renderer not configured for %q", NameURLPicker)
	}
	if data.View == nil {
		return ErrViewRequired
	}
	view := *data.View

	hidden := make([]map[string]any, 0, len(view.Hidden))
	for _, h := range view.Hidden {
		hidden = append(hidden, map[string]any{"name": h.Name, "value": h.Value})
	}

	endpoint := ""
	if data.Config != nil {
		if value, ok := data.Config[ConfigEndpoint].(string); ok {
			endpoint = strings.TrimRight(strings.TrimSpace(value), "/")
		}
	}

	payload := map[string]any{
		"field": field,
		"picker": map[string]any{
			"id":          view.FieldID,
			"control_id":  ControlID(view.FieldID),
			"state":       view.State.String(),
			"busy":        view.Busy,
			"has_value":   view.HasValue,
			"affordance":  string(view.Affordance),
			"href":        SafeHref(view.URL),
			"display_url": view.DisplayURL,
			"anchor":      view.AnchorText,
			"blank":       view.OpenInNewTab,
			"endpoint":    endpoint,
			"labels": map[string]any{
				"select": view.Labels.SelectLink,
				"remove": view.Labels.RemoveLink,
			},
			"hidden": hidden,
		},
	}

	templateName := data.Partial(PartialURLPicker, templatePrefix+"urlpicker.tpl")
	rendered, err := data.Template.RenderTemplate(templateName, payload)
	if err != nil {
		return fmt.Errorf("components: render template %q: %w", templateName, err)
	}
	buf.WriteString(rendered)
	return nil
}

// SafeHref returns raw when it is a relative reference or uses a web scheme,
// and "#" otherwise.
func SafeHref(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "#"
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "#"
	}
	switch strings.ToLower(parsed.Scheme) {
	case "", "http", "https", "mailto", "tel":
		return raw
	default:
		return "#"
	}
}

