package picker

import (
	"context"
	"sync"
)

// Notice is a user-visible message produced when an interaction fails.
type Notice struct {
	FieldID string
	Handle  SessionHandle
	Message string
	Err     error
}

// Notifier surfaces notices to the user.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, notice Notice)

// Notify calls fn.
func (fn NotifierFunc) Notify(ctx context.Context, notice Notice) {
	if fn != nil {
		fn(ctx, notice)
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notice) {}

// NoticeBuffer keeps undelivered notices per field until a presentation layer
// drains them. It is safe for concurrent use.
type NoticeBuffer struct {
	mu      sync.Mutex
	limit   int
	pending map[string][]Notice
}

// NewNoticeBuffer retains at most limit notices per field (default 10).
func NewNoticeBuffer(limit int) *NoticeBuffer {
	if limit <= 0 {
		limit = 10
	}
	return &NoticeBuffer{limit: limit, pending: make(map[string][]Notice)}
}

// Notify implements Notifier.
func (b *NoticeBuffer) Notify(_ context.Context, notice Notice) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	queue := append(b.pending[notice.FieldID], notice)
	if len(queue) > b.limit {
		queue = queue[len(queue)-b.limit:]
	}
	b.pending[notice.FieldID] = queue
}

// Drain returns and clears the notices queued for fieldID.
func (b *NoticeBuffer) Drain(fieldID string) []Notice {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending[fieldID]
	delete(b.pending, fieldID)
	return out
}
