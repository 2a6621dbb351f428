package uischema

import (
	"sort"

	"github.com/goliatone/go-urlpicker/pkg/model"
)

// Store keeps the parsed forms and overlays. It is safe for concurrent readers
// when treated as immutable after construction.
type Store struct {
	forms    map[string]model.FormModel
	overlays map[string]map[string]FieldConfig
	sources  map[string]string
}

// FieldConfig overrides presentation details of a declared field.
type FieldConfig struct {
	Label       string            `json:"label" yaml:"label"`
	Placeholder string            `json:"placeholder" yaml:"placeholder"`
	Description string            `json:"description" yaml:"description"`
	Widget      string            `json:"widget" yaml:"widget"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
	UIHints     map[string]string `json:"uiHints" yaml:"ui_hints"`
}

// Form returns a copy of the form declared under id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	form, ok := s.forms[id]
	if !ok {
		return model.FormModel{}, false
	}
	return cloneForm(form), true
}

// Forms lists the declared form ids, sorted.
func (s *Store) Forms() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Overlay returns the field overlays registered for form id.
func (s *Store) Overlay(id string) (map[string]FieldConfig, bool) {
	if s == nil {
		return nil, false
	}
	overlay, ok := s.overlays[id]
	return overlay, ok
}

// Source reports the file form id was declared in.
func (s *Store) Source(id string) string {
	if s == nil {
		return ""
	}
	return s.sources[id]
}

// Empty reports whether the store holds any forms or overlays.
func (s *Store) Empty() bool {
	return s == nil || (len(s.forms) == 0 && len(s.overlays) == 0)
}

func cloneForm(form model.FormModel) model.FormModel {
	out := form
	out.Metadata = cloneStringMap(form.Metadata)
	out.Fields = make([]model.Field, len(form.Fields))
	for i, field := range form.Fields {
		field.Metadata = cloneStringMap(field.Metadata)
		field.UIHints = cloneStringMap(field.UIHints)
		out.Fields[i] = field
	}
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
