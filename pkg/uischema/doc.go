// Package uischema loads form declarations and field overlays from JSON or
// YAML documents. Forms declared here are what the server renders; overlays
// let a deployment relabel fields or force a widget without touching the
// declaration.
package uischema
