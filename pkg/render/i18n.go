package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-urlpicker/pkg/model"
)

const (
	formTitleKey       = "titleKey"
	formDescriptionKey = "descriptionKey"

	fieldLabelKeyHint       = "labelKey"
	fieldDescriptionKeyHint = "descriptionKey"
	fieldPlaceholderKeyHint = "placeholderKey"
)

var (
	// ErrMissingTranslator is passed to the missing handler when no
	// translator is configured.
	ErrMissingTranslator = errors.New("render: translator not configured")
	// ErrMissingTranslation is returned by Catalog for unknown keys.
	ErrMissingTranslation = errors.New("render: missing translation")
)

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler picks the string used when a key cannot be
// translated. args carries a {"default": fallback} map as its first entry.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// LocalizeOptions select the locale and translator used by LocalizeFormModel
// and Translate.
type LocalizeOptions struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Catalog is an in-memory Translator keyed by locale then message key. A
// region locale ("fr-CA") falls back to its base language ("fr").
type Catalog map[string]map[string]string

// Translate implements Translator. Arguments are applied with fmt.Sprintf.
func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeChain(locale) {
		messages, ok := c[candidate]
		if !ok {
			continue
		}
		if msg, ok := messages[key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

func localeChain(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return nil
	}
	chain := []string{locale}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		chain = append(chain, locale[:idx])
	}
	return chain
}

// Translate resolves key with opts, falling back to fallback.
func Translate(opts LocalizeOptions, key, fallback string) string {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return translate(opts.Locale, key, fallback, opts.Translator, onMissing)
}

// LocalizeFormModel mutates the supplied form model in place, translating the
// `*Key` entries of the form metadata and of each field's UI hints.
//
// This is best-effort: translation failures are routed through opts.OnMissing.
func LocalizeFormModel(form *model.FormModel, opts LocalizeOptions) {
	if form == nil {
		return
	}

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	if key := strings.TrimSpace(form.Metadata[formTitleKey]); key != "" {
		form.Title = translate(opts.Locale, key, form.Title, opts.Translator, onMissing)
	}
	if key := strings.TrimSpace(form.Metadata[formDescriptionKey]); key != "" {
		form.Description = translate(opts.Locale, key, form.Description, opts.Translator, onMissing)
	}

	for i := range form.Fields {
		localizeField(&form.Fields[i], opts.Locale, opts.Translator, onMissing)
	}
}

func localizeField(field *model.Field, locale string, t Translator, onMissing MissingTranslationHandler) {
	if key := strings.TrimSpace(field.UIHints[fieldLabelKeyHint]); key != "" {
		field.Label = translate(locale, key, strings.TrimSpace(field.Label), t, onMissing)
	}
	if key := strings.TrimSpace(field.UIHints[fieldDescriptionKeyHint]); key != "" {
		field.Description = translate(locale, key, strings.TrimSpace(field.Description), t, onMissing)
	}
	if key := strings.TrimSpace(field.UIHints[fieldPlaceholderKeyHint]); key != "" {
		field.Placeholder = translate(locale, key, strings.TrimSpace(field.Placeholder), t, onMissing)
	}
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	args := []any{map[string]any{"default": fallback}}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, args, err)
}

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	if len(args) > 0 {
		if params, ok := args[0].(map[string]any); ok {
			if fallback, ok := params["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}
