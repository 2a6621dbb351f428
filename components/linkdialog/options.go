package linkdialog

import (
	"context"
	"net/http"

	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	rendertemplate "github.com/goliatone/go-urlpicker/pkg/render/template"
)

// Controller is the picker surface the handler drives. *picker.Controller
// satisfies it.
type Controller interface {
	Store() picker.Store
	State(fieldID string) picker.State
	Render(fieldID string, current link.Value) picker.View
	Open(ctx context.Context, fieldID string, current link.Value) (bool, error)
	Reset(ctx context.Context, fieldID string) error
	CommitSession(ctx context.Context, fieldID string, handle picker.SessionHandle, value link.Value) error
	CancelSession(fieldID string, handle picker.SessionHandle) error
}

// Sessions finds the dialog sessions awaiting a browser decision.
// *remote.Provider satisfies it.
type Sessions interface {
	Lookup(handle picker.SessionHandle) (picker.Session, bool)
}

// MarkupRenderer renders the picker control for a view.
type MarkupRenderer interface {
	RenderPicker(view picker.View) (string, error)
}

type GuardFunc func(r *http.Request) error

// DialogLabels are the strings of the dialog fragment.
type DialogLabels struct {
	Title  string
	Help   string
	URL    string
	Anchor string
	Blank  string
	Cancel string
	Submit string
}

// DefaultDialogLabels returns the English dialog strings.
func DefaultDialogLabels() DialogLabels {
	return DialogLabels{
		Title:  "Insert/edit link",
		Help:   "Enter the destination URL",
		URL:    "URL",
		Anchor: "Link Text",
		Blank:  "Open link in a new tab",
		Cancel: "Cancel",
		Submit: "Add Link",
	}
}

type Options struct {
	RoutePath      string
	BasePath       string
	DialogTemplate string
	DialogLabels   DialogLabels
	Guard          GuardFunc

	Controller Controller
	Sessions   Sessions
	Templates  rendertemplate.TemplateRenderer
	Markup     MarkupRenderer
	Notices    *picker.NoticeBuffer
	Logger     logger.Logger
}

type OptionFn func(*Options)

const (
	defaultRoutePath      = "/urlpicker"
	defaultDialogTemplate = "templates/dialog.tpl"
)

func DefaultOptions() Options {
	return Options{
		RoutePath:      defaultRoutePath,
		DialogTemplate: defaultDialogTemplate,
		DialogLabels:   DefaultDialogLabels(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.DialogTemplate == "" {
		opts.DialogTemplate = defaultDialogTemplate
	}
	opts.DialogLabels = mergeLabels(DefaultDialogLabels(), opts.DialogLabels)
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithController(ctrl Controller) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Controller = ctrl
	}
}

func WithSessions(sessions Sessions) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sessions = sessions
	}
}

func WithTemplates(templates rendertemplate.TemplateRenderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Templates = templates
	}
}

func WithDialogTemplate(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DialogTemplate = name
	}
}

func WithDialogLabels(labels DialogLabels) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DialogLabels = labels
	}
}

func WithMarkup(markup MarkupRenderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Markup = markup
	}
}

// WithNotices sets the buffer the controller notifies. The handler drains
// the notices of failures it already answers so they are not shown twice.
func WithNotices(notices *picker.NoticeBuffer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Notices = notices
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(l logger.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = l
	}
}

func mergeLabels(base, override DialogLabels) DialogLabels {
	pick := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	pick(&base.Title, override.Title)
	pick(&base.Help, override.Help)
	pick(&base.URL, override.URL)
	pick(&base.Anchor, override.Anchor)
	pick(&base.Blank, override.Blank)
	pick(&base.Cancel, override.Cancel)
	pick(&base.Submit, override.Submit)
	return base
}
