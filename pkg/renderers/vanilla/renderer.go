package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/model"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/render"
	rendertemplate "github.com/goliatone/go-urlpicker/pkg/render/template"
	gotemplate "github.com/goliatone/go-urlpicker/pkg/render/template/gotemplate"
	"github.com/goliatone/go-urlpicker/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-urlpicker/pkg/widgets"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	widgets          *widgets.Registry
	theme            *theme.RendererConfig
	assetBase        string
	endpoint         string
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithWidgetRegistry replaces the default widget registry.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithTheme applies a go-theme renderer configuration. Partials override
// component templates; AssetURL resolves component scripts.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithAssetBase prefixes component asset references that the theme does not
// resolve, e.g. "/assets".
func WithAssetBase(base string) Option {
	return func(cfg *config) {
		cfg.assetBase = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// WithEndpoint sets the base path of the link dialog HTTP component that the
// URL picker runtime talks to.
func WithEndpoint(path string) Option {
	return func(cfg *config) {
		cfg.endpoint = strings.TrimRight(strings.TrimSpace(path), "/")
	}
}

// WithSubmitLabel overrides the form submit button label.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(label) != "" {
			cfg.submitLabel = label
		}
	}
}

// Values carries the state a form is rendered with.
type Values struct {
	// Views holds picker views keyed by link field name.
	Views map[string]picker.View
	// Links holds link values for fields without a view.
	Links map[string]link.Value
	// Data holds values of the other fields.
	Data map[string]any
	// Hidden fields emitted at the top of the form (CSRF tokens and the like).
	Hidden []render.HiddenField
}

func (v Values) linkValue(field string) link.Value {
	if v.Links == nil {
		return link.Empty()
	}
	return v.Links[field]
}

type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	registry    *components.Registry
	widgets     *widgets.Registry
	theme       *theme.RendererConfig
	assetBase   string
	endpoint    string
	submitLabel string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), submitLabel: "Save"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		registry:    cfg.registry,
		widgets:     cfg.widgets,
		theme:       cfg.theme,
		assetBase:   cfg.assetBase,
		endpoint:    cfg.endpoint,
		submitLabel: cfg.submitLabel,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Templates exposes the template renderer so other surfaces (the link dialog
// fragment) render through the same engine.
func (r *Renderer) Templates() rendertemplate.TemplateRenderer {
	return r.templates
}

// Render renders form with values into a complete HTML form.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, values Values) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := form.Validate(); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	cr := r.componentRenderer()
	fields := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		markup, err := cr.render(field, values)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		fields = append(fields, markup)
	}

	stylesheets, scripts := cr.assets()
	hidden := make([]map[string]any, 0, len(values.Hidden))
	for _, h := range values.Hidden {
		if h.Name == "" {
			continue
		}
		hidden = append(hidden, map[string]any{"name": h.Name, "value": h.Value})
	}

	result, err := r.templates.RenderTemplate("templates/form.tpl", map[string]any{
		"form":         form,
		"fields":       fields,
		"hidden":       hidden,
		"chrome":       chromeContext(),
		"submit_label": r.submitLabel,
		"stylesheets":  r.resolveStyles(stylesheets),
		"scripts":      r.resolveScripts(scripts),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderField renders a single field with its chrome.
func (r *Renderer) RenderField(field model.Field, values Values) (string, error) {
	return r.componentRenderer().render(field, values)
}

// RenderPicker renders the URL picker control for view without field chrome.
// The browser runtime swaps this markup in after every interaction.
func (r *Renderer) RenderPicker(view picker.View) (string, error) {
	field := model.Field{
		Name:    view.FieldID,
		Type:    model.FieldTypeLink,
		UIHints: map[string]string{"widget": components.NameURLPicker},
	}
	_, markup, err := r.componentRenderer().control(field, Values{
		Views: map[string]picker.View{view.FieldID: view},
	})
	return markup, err
}

func (r *Renderer) componentRenderer() *componentRenderer {
	var config map[string]any
	if r.endpoint != "" {
		config = map[string]any{components.ConfigEndpoint: r.endpoint}
	}
	return &componentRenderer{
		templates:      r.templates,
		registry:       r.registry,
		widgets:        r.widgets,
		theme:          r.theme,
		config:         maps.Clone(config),
		usedComponents: make(map[string]struct{}),
	}
}

func (r *Renderer) resolveAsset(ref string) string {
	if ref == "" || strings.Contains(ref, "://") || strings.HasPrefix(ref, "/") {
		return ref
	}
	if r.theme != nil && r.theme.AssetURL != nil {
		if resolved := r.theme.AssetURL(ref); resolved != "" {
			return resolved
		}
	}
	if r.assetBase != "" {
		return r.assetBase + "/" + ref
	}
	return ref
}

func (r *Renderer) resolveStyles(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, r.resolveAsset(ref))
	}
	return out
}

func (r *Renderer) resolveScripts(scripts []components.Script) []map[string]any {
	out := make([]map[string]any, 0, len(scripts))
	for _, script := range scripts {
		if script.Src == "" {
			continue
		}
		out = append(out, map[string]any{
			"src":    r.resolveAsset(script.Src),
			"defer":  script.Defer,
			"module": script.Module,
		})
	}
	return out
}
