package uischema

import (
	"embed"
	"io/fs"
)

//go:embed ui/schema/*
var embeddedSchema embed.FS

// EmbeddedFS returns the bundled demo form declarations.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSchema, "ui/schema")
	if err != nil {
		panic(err)
	}
	return sub
}
