package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl templates/components/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// DialogTemplate is the template of the link dialog fragment.
	DialogTemplate = "templates/dialog.tpl"
	// PageTemplate wraps a rendered form into a standalone HTML document.
	PageTemplate = "templates/page.tpl"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded browser runtime so callers can serve it over
// HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
