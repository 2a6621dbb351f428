package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-urlpicker/components/linkdialog"
	"github.com/goliatone/go-urlpicker/internal/httpserver/deps"
	"github.com/goliatone/go-urlpicker/internal/logger"
)

func init() { Register(registerPicker) }

func registerPicker(r chi.Router, d deps.Deps) {
	opts := append(PickerOptions(d), d.Dialog...)
	pattern, err := linkdialog.RegisterRoutes(r, "/", opts...)
	if err != nil {
		d.Logger.Error("link dialog routes not mounted", logger.Error(err))
		return
	}
	d.Logger.Debug("link dialog routes mounted", logger.String("path", pattern))
}

// PickerOptions wires the link dialog component to the shared deps.
func PickerOptions(d deps.Deps) []linkdialog.OptionFn {
	return []linkdialog.OptionFn{
		linkdialog.WithController(d.Controller),
		linkdialog.WithSessions(d.Sessions),
		linkdialog.WithTemplates(d.Renderer.Templates()),
		linkdialog.WithMarkup(d.Renderer),
		linkdialog.WithNotices(d.Notices),
		linkdialog.WithLogger(d.Logger),
	}
}
