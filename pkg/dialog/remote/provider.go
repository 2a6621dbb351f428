// Package remote implements a link dialog that lives in the browser. The
// dialog markup is fetched once from an HTTP endpoint, verified and
// sanitised, and each opened session waits for the browser to post back a
// commit or cancel decision, which arrive through Resolve and Dismiss.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/dialog"
	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/picker"
)

const (
	// DefaultRootSelector matches the root element of the dialog fragment.
	DefaultRootSelector = "#urlpicker-link-wrap"

	maxFragmentBytes = 1 << 20
)

var (
	// ErrRootMissing is returned when the fetched fragment lacks the dialog root.
	ErrRootMissing = errors.New("remote: dialog root element missing from fragment")
	// ErrNotLoaded is returned by Open before EnsureLoaded succeeded.
	ErrNotLoaded = errors.New("remote: dialog not loaded")
)

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient overrides the client used to fetch the fragment.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.client = client
		}
	}
}

// WithRootSelector overrides the selector identifying the dialog root.
func WithRootSelector(selector string) Option {
	return func(p *Provider) {
		if trimmed := strings.TrimSpace(selector); trimmed != "" {
			p.rootSelector = trimmed
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.log = l
		}
	}
}

// WithFragment installs markup up front; EnsureLoaded then never fetches.
func WithFragment(markup string) Option {
	return func(p *Provider) {
		p.preinstalled = markup
	}
}

type loadCall struct {
	done chan struct{}
	err  error
}

// Provider satisfies picker.DialogProvider and picker.DialogCloser.
type Provider struct {
	fragmentURL  string
	client       *http.Client
	rootSelector string
	log          logger.Logger
	sessions     *dialog.Sessions
	preinstalled string

	mu       sync.Mutex
	fragment string
	loaded   bool
	inflight *loadCall
}

var (
	_ picker.DialogProvider = (*Provider)(nil)
	_ picker.DialogCloser   = (*Provider)(nil)
)

// New constructs a provider fetching its fragment from fragmentURL.
func New(fragmentURL string, options ...Option) (*Provider, error) {
	p := &Provider{
		fragmentURL:  strings.TrimSpace(fragmentURL),
		client:       http.DefaultClient,
		rootSelector: DefaultRootSelector,
		log:          logger.NewNop(),
		sessions:     dialog.NewSessions(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	if p.preinstalled != "" {
		markup, err := p.install(strings.NewReader(p.preinstalled))
		if err != nil {
			return nil, err
		}
		p.fragment, p.loaded = markup, true
	}
	if p.fragmentURL == "" && !p.loaded {
		return nil, errors.New("remote: fragment url is required")
	}
	return p, nil
}

// Loaded reports whether the dialog fragment is installed.
func (p *Provider) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Fragment returns the installed, sanitised dialog markup.
func (p *Provider) Fragment() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fragment
}

// EnsureLoaded fetches and installs the fragment unless it is already
// installed. Concurrent callers share a single fetch; a failed fetch leaves
// the provider unloaded so a later call retries.
func (p *Provider) EnsureLoaded(ctx context.Context) error {
	p.mu.Lock()
	if p.loaded {
		p.mu.Unlock()
		return nil
	}
	if call := p.inflight; call != nil {
		p.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	call := &loadCall{done: make(chan struct{})}
	p.inflight = call
	p.mu.Unlock()

	markup, err := p.fetch(ctx)

	p.mu.Lock()
	if err == nil {
		p.fragment, p.loaded = markup, true
	}
	p.inflight = nil
	call.err = err
	close(call.done)
	p.mu.Unlock()

	if err != nil {
		p.log.Warn("link dialog fragment load failed",
			logger.String("url", p.fragmentURL),
			logger.Error(err))
		return err
	}
	p.log.Info("link dialog fragment installed", logger.String("url", p.fragmentURL))
	return nil
}

// Open registers the session; the browser decides it later.
func (p *Provider) Open(_ context.Context, session picker.Session, onCommit func(link.Value), onCancel func()) error {
	if !p.Loaded() {
		return ErrNotLoaded
	}
	return p.sessions.Add(session, onCommit, onCancel)
}

// Close drops a session without invoking its continuations.
func (p *Provider) Close(handle picker.SessionHandle) {
	p.sessions.Drop(handle)
}

// Resolve commits value for handle.
func (p *Provider) Resolve(handle picker.SessionHandle, value link.Value) error {
	return p.sessions.Resolve(handle, value)
}

// Dismiss cancels handle.
func (p *Provider) Dismiss(handle picker.SessionHandle) error {
	return p.sessions.Dismiss(handle)
}

// Lookup returns the pending session for handle.
func (p *Provider) Lookup(handle picker.SessionHandle) (picker.Session, bool) {
	return p.sessions.Lookup(handle)
}

// Pending lists the sessions awaiting a browser decision.
func (p *Provider) Pending() []picker.SessionHandle {
	return p.sessions.Pending()
}

func (p *Provider) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.fragmentURL, nil)
	if err != nil {
		return "", fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	res, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote: fetch fragment: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("remote: fetch fragment: unexpected status %d", res.StatusCode)
	}
	return p.install(io.LimitReader(res.Body, maxFragmentBytes))
}

func (p *Provider) install(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("remote: parse fragment: %w", err)
	}
	root := doc.Find(p.rootSelector).First()
	if root.Length() == 0 {
		return "", fmt.Errorf("%w (%s)", ErrRootMissing, p.rootSelector)
	}
	markup, err := goquery.OuterHtml(root)
	if err != nil {
		return "", fmt.Errorf("remote: serialise fragment: %w", err)
	}
	return strings.TrimSpace(fragmentSanitizer().Sanitize(markup)), nil
}

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

func fragmentSanitizer() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements(
			"div", "span", "p", "form", "fieldset", "legend", "label",
			"input", "button", "small", "strong", "em", "h1", "h2", "h3",
		)
		policy.AllowAttrs("id", "class", "role", "title", "hidden",
			"aria-label", "aria-labelledby", "aria-describedby", "aria-hidden", "aria-modal",
		).Globally()
		policy.AllowDataAttributes()
		policy.AllowAttrs("type", "name", "value", "checked", "placeholder", "autocomplete").OnElements("input")
		policy.AllowAttrs("type", "name", "value").OnElements("button")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("method").OnElements("form")
		fragmentPolicy = policy
	})
	return fragmentPolicy
}
