package components

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameInput     = "input"
	NameToggle    = "toggle"
	NameURLPicker = "urlpicker"
)

// Theme partial keys consulted before the built-in templates.
const (
	PartialInput     = "forms.input"
	PartialToggle    = "forms.toggle"
	PartialURLPicker = "forms.urlpicker"
)

// RuntimeScript is the asset key of the browser runtime that drives the URL
// picker against the link dialog endpoints.
const RuntimeScript = "urlpicker.js"
