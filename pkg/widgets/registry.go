package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-urlpicker/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetURLPicker = "urlpicker"
	WidgetToggle    = "toggle"
	WidgetInput     = "input"
)

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. Explicit hints (metadata
// "widget" or UIHints["widget"]) are honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator. Resolved widgets are written to
// Metadata["widget"] and UIHints["widget"] unless already set. String fields
// resolved to the URL picker become link fields.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	decorated := make([]model.Field, len(form.Fields))
	for idx, field := range form.Fields {
		decorated[idx] = r.decorateField(field)
	}
	form.Fields = decorated
	return nil
}

func (r *Registry) decorateField(field model.Field) model.Field {
	widget, ok := r.Resolve(field)
	if !ok || widget == "" {
		return field
	}
	if field.Metadata == nil {
		field.Metadata = make(map[string]string)
	}
	if field.Metadata["widget"] == "" {
		field.Metadata["widget"] = widget
	}
	if field.UIHints == nil {
		field.UIHints = make(map[string]string)
	}
	if field.UIHints["widget"] == "" {
		field.UIHints["widget"] = widget
	}
	if widget == WidgetURLPicker && (field.Type == "" || field.Type == model.FieldTypeString) {
		field.Type = model.FieldTypeLink
	}
	return field
}

func explicitWidget(field model.Field) string {
	if field.Metadata != nil {
		if widget := strings.TrimSpace(field.Metadata["widget"]); widget != "" {
			return widget
		}
	}
	if field.UIHints != nil {
		if widget := strings.TrimSpace(field.UIHints["widget"]); widget != "" {
			return widget
		}
	}
	return ""
}

// IsLinkFormat reports whether format names a URL-valued string.
func IsLinkFormat(format string) bool {
	switch strings.TrimSpace(strings.ToLower(format)) {
	case "uri", "url", "link", "uri-reference":
		return true
	default:
		return false
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetURLPicker, 100, func(field model.Field) bool {
		if field.Type == model.FieldTypeLink {
			return true
		}
		return (field.Type == "" || field.Type == model.FieldTypeString) && IsLinkFormat(field.Format)
	})

	r.Register(WidgetToggle, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	r.Register(WidgetInput, 0, func(model.Field) bool {
		return true
	})
}
