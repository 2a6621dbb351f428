// Package prompt implements a link dialog on the terminal. Open asks for the
// URL, anchor text and new-tab flag seeded from the current value, then a
// final confirmation decides between commit and cancel.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/picker"
)

// Labels holds the prompt messages.
type Labels struct {
	URL     string
	Anchor  string
	NewTab  string
	Save    string
	Heading string
}

// DefaultLabels returns the English prompt messages.
func DefaultLabels() Labels {
	return Labels{
		URL:     "URL",
		Anchor:  "Link text",
		NewTab:  "Open link in a new tab?",
		Save:    "Save link?",
		Heading: "Insert/edit link for %q",
	}
}

// Option configures a Provider.
type Option func(*Provider)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Provider) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithLabels overrides non-empty prompt messages.
func WithLabels(labels Labels) Option {
	return func(p *Provider) {
		if labels.URL != "" {
			p.labels.URL = labels.URL
		}
		if labels.Anchor != "" {
			p.labels.Anchor = labels.Anchor
		}
		if labels.NewTab != "" {
			p.labels.NewTab = labels.NewTab
		}
		if labels.Save != "" {
			p.labels.Save = labels.Save
		}
		if labels.Heading != "" {
			p.labels.Heading = labels.Heading
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

// Provider satisfies picker.DialogProvider. Open blocks until the user
// answers and invokes the matching continuation before returning.
type Provider struct {
	driver PromptDriver
	labels Labels
	log    logger.Logger
}

var _ picker.DialogProvider = (*Provider)(nil)

// New constructs a provider with the survey driver unless overridden.
func New(options ...Option) *Provider {
	p := &Provider{
		labels: DefaultLabels(),
		log:    logger.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver(nil)
	}
	return p
}

// EnsureLoaded is a no-op; the terminal is always available.
func (p *Provider) EnsureLoaded(ctx context.Context) error {
	return ctx.Err()
}

// Open runs the prompts for session. Ctrl+C or declining the final
// confirmation cancels; driver failures are returned without invoking
// either continuation.
func (p *Provider) Open(ctx context.Context, session picker.Session, onCommit func(link.Value), onCancel func()) error {
	if onCommit == nil || onCancel == nil {
		return errors.New("prompt: commit and cancel continuations are required")
	}

	value, save, err := p.ask(ctx, session)
	switch {
	case errors.Is(err, ErrAborted):
		p.log.Debug("link prompt aborted", logger.String("field", session.FieldID))
		onCancel()
		return nil
	case err != nil:
		return err
	case !save:
		onCancel()
		return nil
	}
	onCommit(value)
	return nil
}

func (p *Provider) ask(ctx context.Context, session picker.Session) (link.Value, bool, error) {
	seed := session.Seed
	if heading := p.labels.Heading; heading != "" {
		msg := heading
		if strings.Contains(heading, "%") {
			msg = fmt.Sprintf(heading, session.FieldID)
		}
		if err := p.driver.Info(ctx, msg); err != nil {
			return link.Value{}, false, err
		}
	}

	rawURL, err := p.driver.Input(ctx, InputConfig{Message: p.labels.URL, Default: seed.URL})
	if err != nil {
		return link.Value{}, false, err
	}
	anchor, err := p.driver.Input(ctx, InputConfig{Message: p.labels.Anchor, Default: seed.AnchorText})
	if err != nil {
		return link.Value{}, false, err
	}
	blank, err := p.driver.Confirm(ctx, ConfirmConfig{Message: p.labels.NewTab, Default: seed.OpenInNewTab})
	if err != nil {
		return link.Value{}, false, err
	}
	save, err := p.driver.Confirm(ctx, ConfirmConfig{Message: p.labels.Save, Default: true})
	if err != nil {
		return link.Value{}, false, err
	}
	return link.Coerce(strings.TrimSpace(rawURL), anchor, blank), save, nil
}
