// Package linkdialog exposes the URL picker over HTTP: the link dialog
// fragment the browser installs on first use, per-field open/reset/read
// endpoints driving the picker controller, and per-session commit/cancel
// endpoints through which the browser resolves an open dialog.
//
// Routes, relative to the mount path:
//
//	GET  /dialog                   dialog fragment (HTML)
//	GET  /fields/{field}           {"state","value"}
//	GET  /fields/{field}/markup    picker control markup (HTML)
//	POST /fields/{field}/open      202 {"state","handle","seed"}, 200 when ignored
//	POST /fields/{field}/reset     {"state","value"}
//	POST /sessions/{handle}/commit JSON or form body with url, anchor, blank
//	POST /sessions/{handle}/cancel
//
// The handler is built on chi and mounts on any chi.Router.
package linkdialog
