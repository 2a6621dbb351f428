package picker

import "github.com/goliatone/go-urlpicker/pkg/link"

// State enumerates the picker lifecycle of a single field.
type State int

const (
	Closed State = iota
	EnsuringDialogLoaded
	Open
	Committing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case EnsuringDialogLoaded:
		return "ensuring_dialog_loaded"
	case Open:
		return "open"
	case Committing:
		return "committing"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state using its String form.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SessionHandle identifies one open-to-close lifecycle of the dialog. It is
// opaque to providers and replaces any presentation-layer identifier.
type SessionHandle string

// Session is the ephemeral record of one picker attempt.
type Session struct {
	FieldID string
	Handle  SessionHandle
	Seed    link.Value
	State   State
}

// Trigger names the event that caused a transition.
type Trigger string

const (
	TriggerOpen        Trigger = "open"
	TriggerLoaded      Trigger = "loaded"
	TriggerLoadFailed  Trigger = "load_failed"
	TriggerCommit      Trigger = "commit"
	TriggerCommitted   Trigger = "committed"
	TriggerWriteFailed Trigger = "write_failed"
	TriggerCancel      Trigger = "cancel"
	TriggerReset       Trigger = "reset"
)

// Transition describes a state change reported to observers.
type Transition struct {
	FieldID string
	Handle  SessionHandle
	From    State
	To      State
	Trigger Trigger
}

// Observer receives transitions after they happen. It runs on the goroutine
// that caused the transition and must not call back into the controller.
type Observer func(Transition)
