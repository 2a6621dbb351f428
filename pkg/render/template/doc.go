// Package template defines the template rendering seam used by the component
// renderers and the link dialog. Engines live in sub-packages.
package template
