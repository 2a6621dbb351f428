package picker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/link"
)

// Controller drives the picker state machine for any number of fields. The
// zero value is not usable; construct with New.
type Controller struct {
	store       Store
	dialog      DialogProvider
	notifier    Notifier
	log         logger.Logger
	loadTimeout time.Duration
	newHandle   func() SessionHandle
	labels      Labels
	homeURL     string
	observers   []Observer

	mu       sync.Mutex
	sessions map[string]*Session

	// writes serialises store writes per field so a Reset that races a commit
	// always lands last.
	writes sync.Map
}

// New constructs a controller bound to store and dialog.
func New(store Store, dialog DialogProvider, options ...Option) (*Controller, error) {
	if store == nil {
		return nil, errors.New("picker: store is required")
	}
	if dialog == nil {
		return nil, errors.New("picker: dialog provider is required")
	}

	c := &Controller{
		store:       store,
		dialog:      dialog,
		notifier:    nopNotifier{},
		log:         logger.NewNop(),
		loadTimeout: DefaultLoadTimeout,
		newHandle:   newSessionHandle,
		labels:      DefaultLabels(),
		sessions:    make(map[string]*Session),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Store returns the field value store the controller writes to.
func (c *Controller) Store() Store {
	return c.store
}

// State reports the current state for fieldID. Fields without a session are
// Closed.
func (c *Controller) State(fieldID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[strings.TrimSpace(fieldID)]; ok {
		return s.State
	}
	return Closed
}

// Session returns a copy of the active session for fieldID.
func (c *Controller) Session(fieldID string) (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[strings.TrimSpace(fieldID)]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Render builds the view for fieldID from current. It has no side effects.
func (c *Controller) Render(fieldID string, current link.Value) View {
	return BuildView(fieldID, current, c.State(fieldID), c.labels, c.homeURL)
}

// Open starts a picker session for fieldID seeded with current. It returns
// false without error when the field already has a session. On success the
// dialog is open when Open returns (or already resolved, for providers that
// complete synchronously).
func (c *Controller) Open(ctx context.Context, fieldID string, current link.Value) (bool, error) {
	fieldID = strings.TrimSpace(fieldID)
	if fieldID == "" {
		return false, ErrFieldIDRequired
	}

	c.mu.Lock()
	if active, ok := c.sessions[fieldID]; ok {
		state := active.State
		c.mu.Unlock()
		c.log.Debug("picker open ignored",
			logger.String("field", fieldID),
			logger.String("state", state.String()))
		return false, nil
	}
	session := &Session{
		FieldID: fieldID,
		Handle:  c.newHandle(),
		Seed:    current,
		State:   EnsuringDialogLoaded,
	}
	c.sessions[fieldID] = session
	handle := session.Handle
	c.mu.Unlock()
	c.emit(Transition{FieldID: fieldID, Handle: handle, From: Closed, To: EnsuringDialogLoaded, Trigger: TriggerOpen})

	loadCtx, cancel := context.WithTimeout(ctx, c.loadTimeout)
	err := c.dialog.EnsureLoaded(loadCtx)
	cancel()
	if err != nil {
		if !c.finish(fieldID, handle, EnsuringDialogLoaded, TriggerLoadFailed) {
			return false, nil
		}
		wrapped := fmt.Errorf("%w: %w", ErrDialogLoadFailed, err)
		c.surface(ctx, fieldID, handle, "The link dialog could not be loaded.", wrapped)
		return false, wrapped
	}

	c.mu.Lock()
	active, ok := c.sessions[fieldID]
	if !ok || active.Handle != handle {
		// reset while loading
		c.mu.Unlock()
		return false, nil
	}
	active.State = Open
	snapshot := *active
	c.mu.Unlock()
	c.emit(Transition{FieldID: fieldID, Handle: handle, From: EnsuringDialogLoaded, To: Open, Trigger: TriggerLoaded})

	detached := context.WithoutCancel(ctx)
	onCommit := func(value link.Value) {
		_ = c.commitSession(detached, fieldID, handle, value)
	}
	onCancel := func() {
		_ = c.cancelSession(fieldID, handle)
	}

	if err := c.dialog.Open(ctx, snapshot, onCommit, onCancel); err != nil {
		if !c.finish(fieldID, handle, Open, TriggerLoadFailed) {
			return false, nil
		}
		wrapped := fmt.Errorf("%w: open: %w", ErrDialogLoadFailed, err)
		c.surface(ctx, fieldID, handle, "The link dialog could not be opened.", wrapped)
		return false, wrapped
	}
	return true, nil
}

// Commit writes values for the open session of fieldID and closes it.
func (c *Controller) Commit(ctx context.Context, fieldID string, values link.Value) error {
	handle, err := c.openHandle(fieldID)
	if err != nil {
		return err
	}
	return c.CommitSession(ctx, fieldID, handle, values)
}

// Cancel closes the open session of fieldID without touching the store.
func (c *Controller) Cancel(fieldID string) error {
	handle, err := c.openHandle(fieldID)
	if err != nil {
		return err
	}
	return c.CancelSession(fieldID, handle)
}

// CommitSession commits value for the session identified by handle and
// reports the outcome of the store write. It is the path for decisions that
// arrive out of band, such as a browser posting back. The provider's entry
// for handle is released whatever the outcome, so its continuations never
// run afterwards. A handle that is not the open session of fieldID yields
// ErrNoSession.
func (c *Controller) CommitSession(ctx context.Context, fieldID string, handle SessionHandle, value link.Value) error {
	err := c.commitSession(ctx, strings.TrimSpace(fieldID), handle, value)
	c.closeDialog(handle)
	return err
}

// CancelSession closes the session identified by handle without touching the
// store and releases the provider's entry for it.
func (c *Controller) CancelSession(fieldID string, handle SessionHandle) error {
	err := c.cancelSession(strings.TrimSpace(fieldID), handle)
	c.closeDialog(handle)
	return err
}

// Reset writes the empty value for fieldID. It is allowed in every state; an
// active session is cancelled first and its continuations become no-ops.
func (c *Controller) Reset(ctx context.Context, fieldID string) error {
	fieldID = strings.TrimSpace(fieldID)
	if fieldID == "" {
		return ErrFieldIDRequired
	}

	c.mu.Lock()
	active, ok := c.sessions[fieldID]
	if ok {
		delete(c.sessions, fieldID)
	}
	c.mu.Unlock()

	var handle SessionHandle
	if ok {
		handle = active.Handle
		c.emit(Transition{FieldID: fieldID, Handle: handle, From: active.State, To: Closed, Trigger: TriggerReset})
		c.closeDialog(handle)
	}

	unlock := c.lockField(fieldID)
	err := c.store.Set(ctx, fieldID, link.Empty())
	unlock()
	if err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrStoreWriteFailed, err)
		c.surface(ctx, fieldID, handle, "The link could not be removed.", wrapped)
		return wrapped
	}
	c.log.Info("picker value reset", logger.String("field", fieldID))
	return nil
}

func (c *Controller) commitSession(ctx context.Context, fieldID string, handle SessionHandle, value link.Value) error {
	c.mu.Lock()
	active, ok := c.sessions[fieldID]
	if !ok || active.Handle != handle || active.State != Open {
		c.mu.Unlock()
		c.log.Debug("picker commit ignored",
			logger.String("field", fieldID),
			logger.String("handle", string(handle)))
		return ErrNoSession
	}
	active.State = Committing
	c.mu.Unlock()
	c.emit(Transition{FieldID: fieldID, Handle: handle, From: Open, To: Committing, Trigger: TriggerCommit})

	unlock := c.lockField(fieldID)
	defer unlock()

	if !c.isCurrent(fieldID, handle) {
		// reset between Committing and the write
		return ErrNoSession
	}

	if err := c.store.Set(ctx, fieldID, value); err != nil {
		c.finish(fieldID, handle, Committing, TriggerWriteFailed)
		wrapped := fmt.Errorf("%w: %w", ErrStoreWriteFailed, err)
		c.surface(ctx, fieldID, handle, "The link could not be saved.", wrapped)
		return wrapped
	}

	c.finish(fieldID, handle, Committing, TriggerCommitted)
	c.log.Info("picker value committed",
		logger.String("field", fieldID),
		logger.Bool("has_value", value.HasValue()),
		logger.Bool("blank", value.OpenInNewTab))
	return nil
}

func (c *Controller) cancelSession(fieldID string, handle SessionHandle) error {
	if !c.finish(fieldID, handle, Open, TriggerCancel) {
		c.log.Debug("picker cancel ignored",
			logger.String("field", fieldID),
			logger.String("handle", string(handle)))
		return ErrNoSession
	}
	return nil
}

func (c *Controller) openHandle(fieldID string) (SessionHandle, error) {
	fieldID = strings.TrimSpace(fieldID)
	if fieldID == "" {
		return "", ErrFieldIDRequired
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	active, ok := c.sessions[fieldID]
	if !ok || active.State != Open {
		return "", ErrNoSession
	}
	return active.Handle, nil
}

func (c *Controller) isCurrent(fieldID string, handle SessionHandle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	active, ok := c.sessions[fieldID]
	return ok && active.Handle == handle
}

// finish removes the session when it is still the current one and in state
// from, reporting whether it did.
func (c *Controller) finish(fieldID string, handle SessionHandle, from State, trigger Trigger) bool {
	c.mu.Lock()
	active, ok := c.sessions[fieldID]
	if !ok || active.Handle != handle || active.State != from {
		c.mu.Unlock()
		return false
	}
	delete(c.sessions, fieldID)
	c.mu.Unlock()
	c.emit(Transition{FieldID: fieldID, Handle: handle, From: from, To: Closed, Trigger: trigger})
	return true
}

func (c *Controller) closeDialog(handle SessionHandle) {
	if closer, ok := c.dialog.(DialogCloser); ok {
		closer.Close(handle)
	}
}

func (c *Controller) lockField(fieldID string) func() {
	value, _ := c.writes.LoadOrStore(fieldID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (c *Controller) surface(ctx context.Context, fieldID string, handle SessionHandle, message string, err error) {
	c.log.Warn("picker interaction failed",
		logger.String("field", fieldID),
		logger.String("handle", string(handle)),
		logger.Error(err))
	c.notifier.Notify(ctx, Notice{
		FieldID: fieldID,
		Handle:  handle,
		Message: message,
		Err:     err,
	})
}

func (c *Controller) emit(t Transition) {
	c.log.Debug("picker transition",
		logger.String("field", t.FieldID),
		logger.String("from", t.From.String()),
		logger.String("to", t.To.String()),
		logger.String("trigger", string(t.Trigger)))
	for _, observer := range c.observers {
		observer(t)
	}
}
