// Package urlpicker exposes the link field picker from the module root so
// applications can embed it without reaching into the sub-packages.
//
// A typical browser setup pairs a controller with the in-process dialog and
// mounts the dialog endpoints next to the form:
//
//	renderer, _ := vanilla.New(vanilla.WithEndpoint("/urlpicker"))
//	dialog, _ := urlpicker.InProcessDialog("/urlpicker", renderer.Templates(), linkdialog.DefaultDialogLabels())
//	ctrl, _ := urlpicker.New(urlpicker.NewMemoryStore(nil), dialog)
//	linkdialog.RegisterRoutes(router, "/",
//	  linkdialog.WithController(ctrl),
//	  linkdialog.WithSessions(dialog),
//	  linkdialog.WithMarkup(renderer),
//	)
package urlpicker

import (
	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/store"
)

// Value is the persisted state of a link field.
type Value = link.Value

// Controller drives the picker state machine.
type Controller = picker.Controller

// Store persists link values per field.
type Store = picker.Store

// DialogProvider loads and opens the link dialog.
type DialogProvider = picker.DialogProvider

// Option configures a Controller.
type Option = picker.Option

// View is the render model of a single field.
type View = picker.View

// New constructs a controller bound to store and dialog.
func New(st Store, dialog DialogProvider, options ...Option) (*Controller, error) {
	return picker.New(st, dialog, options...)
}

// NewMemoryStore returns an in-process store seeded with initial.
func NewMemoryStore(initial map[string]Value) *store.Memory {
	return store.NewMemory(initial)
}
