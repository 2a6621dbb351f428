package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm        ChromeClass = "urlpicker-form"
	ClassHeader      ChromeClass = "urlpicker-form-header"
	ClassField       ChromeClass = "urlpicker-form-field"
	ClassLabel       ChromeClass = "urlpicker-form-label"
	ClassDescription ChromeClass = "urlpicker-form-description"
	ClassActions     ChromeClass = "urlpicker-form-actions"
)

func chromeContext() map[string]any {
	return map[string]any{
		"form":    string(ClassForm),
		"header":  string(ClassHeader),
		"actions": string(ClassActions),
	}
}
