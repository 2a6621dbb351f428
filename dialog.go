package urlpicker

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-urlpicker/components/linkdialog"
	"github.com/goliatone/go-urlpicker/pkg/dialog/remote"
	rendertemplate "github.com/goliatone/go-urlpicker/pkg/render/template"
	"github.com/goliatone/go-urlpicker/pkg/renderers/vanilla"
)

// InProcessDialog renders the built-in dialog fragment with templates and
// returns a browser dialog provider that has it installed up front, so
// opening a picker never waits on a fetch. Forms inside the fragment post
// back under endpoint.
func InProcessDialog(endpoint string, templates rendertemplate.TemplateRenderer, labels linkdialog.DialogLabels, options ...remote.Option) (*remote.Provider, error) {
	opts := linkdialog.NewOptions(
		linkdialog.WithTemplates(templates),
		linkdialog.WithDialogLabels(labels),
	)
	opts.BasePath = endpoint
	markup, err := linkdialog.RenderDialog(opts)
	if err != nil {
		return nil, fmt.Errorf("urlpicker: render link dialog: %w", err)
	}
	return remote.New("", append(options, remote.WithFragment(markup))...)
}

// RuntimeAssetsFS exposes the browser runtime script the
// rendered pickers load.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(urlpicker.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// EmbeddedTemplates exposes the built-in templates so callers can reuse or
// extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
