package capture

import (
	"strings"

	"github.com/nikbrunner/blink/internal/model"
)

// marker is an inline type marker. Either form may appear anywhere in the
// text; matching is by containment, not anchored.
type marker struct {
	typ      model.Type
	slashFwd string // "/r "
	slashBck string // "r/ "
}

// Checked in order, first match wins.
var markers = []marker{
	{model.TypeReminder, "/r ", "r/ "},
	{model.TypeBookmark, "/b", "b/"},
	{model.TypeQuote, "/q ", "q/ "},
}

// DetectType picks the Blink type from inline markers and returns the text
// with the marker removed. Text without a marker is a thought.
func DetectType(input string) (model.Type, string) {
	for _, m := range markers {
		switch {
		case strings.Contains(input, m.slashFwd):
			return m.typ, RemovePrefix(input, strings.TrimSpace(m.slashFwd))
		case strings.Contains(input, m.slashBck):
			return m.typ, RemovePrefix(input, strings.TrimSpace(m.slashBck))
		}
	}
	return model.TypeThought, input
}

// RemovePrefix removes the first occurrence of prefix and trims the result.
func RemovePrefix(input, prefix string) string {
	return strings.TrimSpace(strings.Replace(input, prefix, "", 1))
}
