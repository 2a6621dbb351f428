package uischema

import (
	"github.com/goliatone/go-urlpicker/pkg/model"
)

const widgetHintKey = "widget"

// Decorator applies the overlays of a store to form models.
type Decorator struct {
	store *Store
}

var _ model.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate merges the overlay registered for form.ID into its fields.
// Overlay entries naming unknown fields are ignored.
func (d *Decorator) Decorate(form *model.FormModel) error {
	if d == nil || d.store == nil || form == nil {
		return nil
	}
	overlay, ok := d.store.Overlay(form.ID)
	if !ok {
		return nil
	}
	for i := range form.Fields {
		cfg, ok := overlay[form.Fields[i].Name]
		if !ok {
			continue
		}
		applyFieldConfig(&form.Fields[i], cfg)
	}
	return nil
}

func applyFieldConfig(field *model.Field, cfg FieldConfig) {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
	}
	if cfg.Description != "" {
		field.Description = cfg.Description
	}
	field.Metadata = mergeStringMap(field.Metadata, cfg.Metadata)
	field.UIHints = mergeStringMap(field.UIHints, cfg.UIHints)
	if cfg.Widget != "" {
		field.UIHints = mergeStringMap(field.UIHints, map[string]string{widgetHintKey: cfg.Widget})
	}
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
