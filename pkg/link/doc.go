// Package link defines the value managed by the URL picker field: a URL, the
// anchor text displayed for it and whether it opens in a new tab.
//
// On the form-submission boundary a value travels as three hidden inputs
// named `<field>[url]`, `<field>[anchor]` and `<field>[blank]`, the last one
// serialised as "0" or "1". Names, HiddenFields and Decode implement that
// shape. JSON payloads use the same keys (url, anchor, blank).
package link
