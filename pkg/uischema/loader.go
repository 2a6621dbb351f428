package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-urlpicker/pkg/model"
)

// LoadFS walks the provided filesystem and parses JSON/YAML schema files.
// When fsys is nil or no schema files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		forms:    make(map[string]model.FormModel),
		overlays: make(map[string]map[string]FieldConfig),
		sources:  make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return store.merge(doc, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

type documentFile struct {
	Forms    map[string]formFile               `json:"forms" yaml:"forms"`
	Overlays map[string]map[string]FieldConfig `json:"overlays" yaml:"overlays"`
}

type formFile struct {
	Endpoint    string            `json:"endpoint" yaml:"endpoint"`
	Method      string            `json:"method" yaml:"method"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Fields      []model.Field     `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	return doc, nil
}

func (s *Store) merge(doc documentFile, source string) error {
	for rawID, raw := range doc.Forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("uischema: file %s declares a form with an empty id", source)
		}
		if prev, exists := s.sources[id]; exists {
			return fmt.Errorf("uischema: duplicate form %q (files %s and %s)", id, prev, source)
		}
		form := normaliseForm(id, raw)
		if err := form.Validate(); err != nil {
			return fmt.Errorf("uischema: form %q (file %s): %w", id, source, err)
		}
		s.forms[id] = form
		s.sources[id] = source
	}

	for rawID, fields := range doc.Overlays {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("uischema: file %s declares an overlay with an empty form id", source)
		}
		target := s.overlays[id]
		if target == nil {
			target = make(map[string]FieldConfig, len(fields))
			s.overlays[id] = target
		}
		for rawName, cfg := range fields {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("uischema: overlay %q (file %s) has an empty field name", id, source)
			}
			if _, exists := target[name]; exists {
				return fmt.Errorf("uischema: overlay %q (file %s) repeats field %q", id, source, name)
			}
			target[name] = cfg
		}
	}
	return nil
}

func normaliseForm(id string, raw formFile) model.FormModel {
	method := strings.ToUpper(strings.TrimSpace(raw.Method))
	if method == "" {
		method = "POST"
	}
	form := model.FormModel{
		ID:          id,
		Endpoint:    strings.TrimSpace(raw.Endpoint),
		Method:      method,
		Title:       raw.Title,
		Description: raw.Description,
		Metadata:    cloneStringMap(raw.Metadata),
		Fields:      make([]model.Field, 0, len(raw.Fields)),
	}
	for _, field := range raw.Fields {
		field.Name = strings.TrimSpace(field.Name)
		field.Format = strings.ToLower(strings.TrimSpace(field.Format))
		if field.Type == "" {
			field.Type = model.FieldTypeString
		}
		form.Fields = append(form.Fields, field)
	}
	return form
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
