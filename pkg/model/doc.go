// Package model defines the form model consumed by the vanilla renderer. A
// form is a flat list of fields; link fields are rendered by the URL picker
// component and submit their value as three hidden inputs. The UIHints map
// carries renderer-facing directives such as `widget`, `placeholder`,
// `helpText` and `cssClass`.
package model
