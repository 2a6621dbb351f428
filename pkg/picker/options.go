package picker

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-urlpicker/internal/logger"
)

// DefaultLoadTimeout bounds EnsureLoaded when no timeout is configured.
const DefaultLoadTimeout = 10 * time.Second

// Labels holds the localized strings the picker view needs.
type Labels struct {
	SelectLink string
	RemoveLink string
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		SelectLink: "Select link",
		RemoveLink: "Remove link",
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLoadTimeout bounds how long the controller waits in
// EnsuringDialogLoaded. Non-positive values keep the default.
func WithLoadTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.loadTimeout = d
		}
	}
}

// WithNotifier routes surfaced errors to n.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHandleFunc overrides session handle generation.
func WithHandleFunc(fn func() SessionHandle) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newHandle = fn
		}
	}
}

// WithLabels overrides the view labels. Empty entries keep their defaults.
func WithLabels(labels Labels) Option {
	return func(c *Controller) {
		if labels.SelectLink != "" {
			c.labels.SelectLink = labels.SelectLink
		}
		if labels.RemoveLink != "" {
			c.labels.RemoveLink = labels.RemoveLink
		}
	}
}

// WithHomeURL sets the site URL stripped from summaries.
func WithHomeURL(home string) Option {
	return func(c *Controller) {
		c.homeURL = home
	}
}

// WithObserver registers a transition hook.
func WithObserver(fn Observer) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

func newSessionHandle() SessionHandle {
	return SessionHandle(uuid.NewString())
}
