// Package dialog holds building blocks shared by link dialog providers.
package dialog

import (
	"errors"
	"sort"
	"sync"

	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/picker"
)

// ErrUnknownSession is returned when resolving a handle that is not pending,
// either because it never existed or because it was already resolved.
var ErrUnknownSession = errors.New("dialog: unknown session")

type pending struct {
	session  picker.Session
	onCommit func(link.Value)
	onCancel func()
}

// Sessions tracks the continuations of open dialog sessions. Each entry is
// removed before its continuation runs, so a session resolves exactly once.
type Sessions struct {
	mu      sync.Mutex
	entries map[picker.SessionHandle]pending
}

// NewSessions creates an empty table.
func NewSessions() *Sessions {
	return &Sessions{entries: make(map[picker.SessionHandle]pending)}
}

// Add registers a session. A handle already present is replaced.
func (s *Sessions) Add(session picker.Session, onCommit func(link.Value), onCancel func()) error {
	if session.Handle == "" {
		return errors.New("dialog: session handle is required")
	}
	if onCommit == nil || onCancel == nil {
		return errors.New("dialog: commit and cancel continuations are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.Handle] = pending{session: session, onCommit: onCommit, onCancel: onCancel}
	return nil
}

// Lookup returns the pending session for handle.
func (s *Sessions) Lookup(handle picker.SessionHandle) (picker.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[handle]
	return entry.session, ok
}

// Resolve invokes the commit continuation of handle with value.
func (s *Sessions) Resolve(handle picker.SessionHandle, value link.Value) error {
	entry, ok := s.take(handle)
	if !ok {
		return ErrUnknownSession
	}
	entry.onCommit(value)
	return nil
}

// Dismiss invokes the cancel continuation of handle.
func (s *Sessions) Dismiss(handle picker.SessionHandle) error {
	entry, ok := s.take(handle)
	if !ok {
		return ErrUnknownSession
	}
	entry.onCancel()
	return nil
}

// Drop forgets handle without invoking anything.
func (s *Sessions) Drop(handle picker.SessionHandle) {
	s.take(handle)
}

// Pending returns the handles still waiting for a decision, sorted.
func (s *Sessions) Pending() []picker.SessionHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]picker.SessionHandle, 0, len(s.entries))
	for handle := range s.entries {
		out = append(out, handle)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Sessions) take(handle picker.SessionHandle) (pending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[handle]
	if ok {
		delete(s.entries, handle)
	}
	return entry, ok
}
