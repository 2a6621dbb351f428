package picker

import (
	"context"

	"github.com/goliatone/go-urlpicker/pkg/link"
)

// Store is the field value store. The controller owns no durable state; the
// store is the only place a committed value lives.
type Store interface {
	Get(ctx context.Context, fieldID string) (link.Value, error)
	Set(ctx context.Context, fieldID string, value link.Value) error
}

// DialogProvider loads and opens the link dialog.
//
// EnsureLoaded must be idempotent and return quickly once the dialog is
// available. Open presents the dialog seeded with session.Seed and must
// eventually invoke exactly one of onCommit or onCancel, exactly once.
type DialogProvider interface {
	EnsureLoaded(ctx context.Context) error
	Open(ctx context.Context, session Session, onCommit func(link.Value), onCancel func()) error
}

// DialogCloser is implemented by providers that keep per-session state. Close
// discards the session without invoking its continuations; the controller
// calls it when a session ends from the controller side (Cancel, Reset).
type DialogCloser interface {
	Close(handle SessionHandle)
}
