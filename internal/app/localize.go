package app

import (
	"fmt"
	"os"

	"github.com/goliatone/go-urlpicker/components/linkdialog"
	"github.com/goliatone/go-urlpicker/internal/config"
	"github.com/goliatone/go-urlpicker/pkg/model"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/render"
	"github.com/goliatone/go-urlpicker/pkg/uischema"
	"github.com/goliatone/go-urlpicker/pkg/widgets"
)

// Localize returns the translation options derived from cfg.
func Localize(cfg *config.Config) render.LocalizeOptions {
	opts := render.LocalizeOptions{Locale: cfg.Locale}
	if len(cfg.Translations) > 0 {
		opts.Translator = render.Catalog(cfg.Translations)
	}
	return opts
}

// PickerLabels resolves the picker view labels. Configured labels are the
// fallback for the urlpicker.* message keys.
func PickerLabels(cfg *config.Config, loc render.LocalizeOptions) picker.Labels {
	return picker.Labels{
		SelectLink: render.Translate(loc, "urlpicker.select", cfg.Labels.SelectLink),
		RemoveLink: render.Translate(loc, "urlpicker.remove", cfg.Labels.RemoveLink),
	}
}

// DialogLabels resolves the link dialog strings.
func DialogLabels(loc render.LocalizeOptions) linkdialog.DialogLabels {
	def := linkdialog.DefaultDialogLabels()
	return linkdialog.DialogLabels{
		Title:  render.Translate(loc, "urlpicker.dialog.title", def.Title),
		Help:   render.Translate(loc, "urlpicker.dialog.help", def.Help),
		URL:    render.Translate(loc, "urlpicker.dialog.url", def.URL),
		Anchor: render.Translate(loc, "urlpicker.dialog.anchor", def.Anchor),
		Blank:  render.Translate(loc, "urlpicker.dialog.blank", def.Blank),
		Cancel: render.Translate(loc, "urlpicker.dialog.cancel", def.Cancel),
		Submit: render.Translate(loc, "urlpicker.dialog.submit", def.Submit),
	}
}

// LoadForm reads the configured form declaration, applies overlays and widget
// resolution, then localizes it.
func LoadForm(cfg *config.Config, loc render.LocalizeOptions) (model.FormModel, error) {
	fsys := uischema.EmbeddedFS()
	if cfg.Forms.Dir != "" {
		fsys = os.DirFS(cfg.Forms.Dir)
	}
	schemas, err := uischema.LoadFS(fsys)
	if err != nil {
		return model.FormModel{}, err
	}
	form, ok := schemas.Form(cfg.Forms.Form)
	if !ok {
		return model.FormModel{}, fmt.Errorf("app: form %q not declared (known: %v)", cfg.Forms.Form, schemas.Forms())
	}
	if err := model.Apply(&form, uischema.NewDecorator(schemas), widgets.NewRegistry()); err != nil {
		return model.FormModel{}, fmt.Errorf("app: decorate form %q: %w", form.ID, err)
	}
	render.LocalizeFormModel(&form, loc)
	return form, nil
}
