package link

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// DisplayURL returns the URL shown in the picker summary. Links pointing at
// the site itself are shortened by removing the home URL prefix.
func DisplayURL(v Value, homeURL string) string {
	home := strings.TrimRight(strings.TrimSpace(homeURL), "/")
	if home == "" || !strings.HasPrefix(v.URL, home) {
		return v.URL
	}
	rest := strings.TrimPrefix(v.URL, home)
	if rest == "" {
		return "/"
	}
	if !strings.HasPrefix(rest, "/") && !strings.HasPrefix(rest, "?") && !strings.HasPrefix(rest, "#") {
		// home is a prefix of another host, e.g. example.com vs example.com.au
		return v.URL
	}
	return rest
}

// SanitizeText strips markup from anchor text so it can be placed in the
// summary without carrying editor HTML along. The result is plain text;
// callers escape it for their output format.
func SanitizeText(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(textSanitizer().Sanitize(trimmed)))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
