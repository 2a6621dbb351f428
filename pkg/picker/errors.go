package picker

import "errors"

var (
	// ErrDialogLoadFailed is surfaced when the link dialog cannot be loaded or
	// opened. The field returns to Closed; the user has to trigger again.
	ErrDialogLoadFailed = errors.New("picker: link dialog failed to load")
	// ErrStoreWriteFailed is surfaced when a commit or reset cannot be written.
	// The field returns to Closed with the store left as it was.
	ErrStoreWriteFailed = errors.New("picker: store write failed")
	// ErrNoSession is returned when commit or cancel target a field without an
	// open session, including continuations of a session that already ended.
	ErrNoSession = errors.New("picker: no open session")
	// ErrFieldIDRequired is returned for blank field identifiers.
	ErrFieldIDRequired = errors.New("picker: field id is required")
)
