// Package picker implements the link field controller: the state machine that
// sits between a URL picker field, the link dialog that edits it and the store
// that holds its value.
//
// Each field moves through Closed -> EnsuringDialogLoaded -> Open ->
// Committing -> Closed. At most one session exists per field; an open request
// for a field that already has one is ignored. The dialog receives exactly one
// commit and one cancel continuation per session and the controller ignores
// any continuation whose session already ended, so a provider that fires
// twice, or fires after Reset, cannot write a stale value.
//
// The controller never holds its lock while calling the store or the dialog
// provider. Providers are free to call the continuations synchronously from
// Open (the terminal provider does) or later from another goroutine (the
// browser-backed provider does, from HTTP handlers).
package picker
