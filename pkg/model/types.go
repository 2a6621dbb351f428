package model

import (
	"errors"
	"fmt"
	"strings"
)

// FieldType is the value kind of a field.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeLink    FieldType = "link"
)

// Field describes a single form control.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Required    bool              `json:"required" yaml:"required"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"ui_hints,omitempty"`
}

// FormModel is the top-level structure renderers consume.
type FormModel struct {
	ID          string            `json:"id" yaml:"id"`
	Endpoint    string            `json:"endpoint" yaml:"endpoint"`
	Method      string            `json:"method" yaml:"method"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ErrDuplicateField is returned by Validate when two fields share a name.
var ErrDuplicateField = errors.New("model: duplicate field name")

// Validate checks the form has named, unique fields.
func (f FormModel) Validate() error {
	seen := make(map[string]struct{}, len(f.Fields))
	for idx, field := range f.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("model: field %d has no name", idx)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateField, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Field returns the field called name.
func (f FormModel) Field(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// LinkFields returns the names of the fields of type link, in form order.
func (f FormModel) LinkFields() []string {
	var out []string
	for _, field := range f.Fields {
		if field.Type == FieldTypeLink {
			out = append(out, field.Name)
		}
	}
	return out
}
