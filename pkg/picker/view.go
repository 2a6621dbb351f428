package picker

import (
	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/render"
)

// Affordance is the control the field shows.
type Affordance string

const (
	// AffordanceSelect is the "select link" button shown for unset values.
	AffordanceSelect Affordance = "select"
	// AffordanceSummary is the link summary with its remove control.
	AffordanceSummary Affordance = "summary"
)

// View is the presentation description of a picker field.
type View struct {
	FieldID      string
	State        State
	Busy         bool
	HasValue     bool
	Affordance   Affordance
	URL          string
	DisplayURL   string
	AnchorText   string
	OpenInNewTab bool
	Labels       Labels
	Hidden       []render.HiddenField
}

// BuildView derives the view of a field from its value and picker state.
func BuildView(fieldID string, value link.Value, state State, labels Labels, homeURL string) View {
	view := View{
		FieldID:      fieldID,
		State:        state,
		Busy:         state != Closed,
		HasValue:     value.HasValue(),
		Affordance:   AffordanceSelect,
		URL:          value.URL,
		AnchorText:   link.SanitizeText(value.AnchorText),
		OpenInNewTab: value.OpenInNewTab,
		Labels:       labels,
		Hidden:       link.HiddenFields(fieldID, value),
	}
	if view.HasValue {
		view.Affordance = AffordanceSummary
		view.DisplayURL = link.DisplayURL(value, homeURL)
	}
	return view
}
