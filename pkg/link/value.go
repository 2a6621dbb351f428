package link

import (
	"strconv"
	"strings"
)

// Value is the URL/anchor-text/open-in-new-tab triple. It is a plain value
// type; updates replace the whole value.
type Value struct {
	URL          string
	AnchorText   string
	OpenInNewTab bool
}

// Empty returns the unset value.
func Empty() Value {
	return Value{}
}

// HasValue reports whether a URL is set. The picker shows the link summary
// iff this is true and the "select link" button otherwise.
func (v Value) HasValue() bool {
	return len(v.URL) > 0
}

// Equal reports whether both values carry the same triple.
func (v Value) Equal(other Value) bool {
	return v.URL == other.URL && v.AnchorText == other.AnchorText && v.OpenInNewTab == other.OpenInNewTab
}

// Coerce builds a Value from raw dialog inputs. URL and anchor are taken
// verbatim; blank is coerced to a boolean.
func Coerce(url, anchor string, blank any) Value {
	return Value{
		URL:          url,
		AnchorText:   anchor,
		OpenInNewTab: Truthy(blank),
	}
}

// Truthy coerces checkbox-style inputs to bool. Booleans pass through,
// non-zero numbers are true and strings are true for 1/true/on/yes.
func Truthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "on", "yes":
			return true
		}
		return false
	case []string:
		if len(v) == 0 {
			return false
		}
		return Truthy(v[len(v)-1])
	default:
		return false
	}
}

// BlankFlag renders the open-in-new-tab state as the "0"/"1" wire value.
func (v Value) BlankFlag() string {
	if v.OpenInNewTab {
		return "1"
	}
	return "0"
}

func (v Value) String() string {
	return v.URL + " (" + strconv.Quote(v.AnchorText) + ", blank=" + v.BlankFlag() + ")"
}
