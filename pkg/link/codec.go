package link

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-urlpicker/pkg/render"
)

// FieldNames holds the three input names a picker field submits.
type FieldNames struct {
	URL    string
	Anchor string
	Blank  string
}

// Names derives the submission input names for field.
func Names(field string) FieldNames {
	field = strings.TrimSpace(field)
	return FieldNames{
		URL:    field + "[url]",
		Anchor: field + "[anchor]",
		Blank:  field + "[blank]",
	}
}

// HiddenFields returns the hidden inputs carrying v for field, in url,
// anchor, blank order.
func HiddenFields(field string, v Value) []render.HiddenField {
	names := Names(field)
	return []render.HiddenField{
		render.Hidden(names.URL, v.URL),
		render.Hidden(names.Anchor, v.AnchorText),
		render.Hidden(names.Blank, v.BlankFlag()),
	}
}

// Decode reads the value for field out of a submitted form. Missing inputs
// decode to their zero values.
func Decode(field string, form url.Values) Value {
	names := Names(field)
	return Coerce(form.Get(names.URL), form.Get(names.Anchor), form.Get(names.Blank))
}

// Encode writes v into form under the field's input names.
func Encode(field string, v Value, form url.Values) {
	if form == nil {
		return
	}
	for _, hidden := range HiddenFields(field, v) {
		form.Set(hidden.Name, hidden.Value)
	}
}

type wireValue struct {
	URL    string `json:"url"`
	Anchor string `json:"anchor"`
	Blank  int    `json:"blank"`
}

// MarshalJSON encodes the value with the url/anchor/blank keys used on the
// form boundary.
func (v Value) MarshalJSON() ([]byte, error) {
	blank := 0
	if v.OpenInNewTab {
		blank = 1
	}
	return json.Marshal(wireValue{URL: v.URL, Anchor: v.AnchorText, Blank: blank})
}

// UnmarshalJSON accepts blank as a bool, number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw struct {
		URL    string `json:"url"`
		Anchor string `json:"anchor"`
		Blank  any    `json:"blank"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("link: decode value: %w", err)
	}
	*v = Coerce(raw.URL, raw.Anchor, raw.Blank)
	return nil
}
