// Package design maps Blink types to their display metadata.
package design

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/blink/internal/model"
)

// Palette
var (
	Blue          = lipgloss.AdaptiveColor{Light: "#2E6DB4", Dark: "#6FA8DC"}
	Yellow        = lipgloss.AdaptiveColor{Light: "#9A7A00", Dark: "#E5C07B"}
	SecondaryText = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#808080"}
)

// Info holds the display metadata for one type.
type Info struct {
	Icon      string
	Title     string
	IconColor lipgloss.TerminalColor
	Color     lipgloss.TerminalColor
}

var registry = map[model.Type]Info{
	model.TypeThought: {
		Icon:      "¶",
		Title:     "Thoughts",
		IconColor: Blue,
		Color:     Blue,
	},
	model.TypeReminder: {
		Icon:      "◷",
		Title:     "Reminders",
		IconColor: Yellow,
		Color:     Yellow,
	},
	model.TypeBookmark: {
		Icon:      "↗",
		Title:     "Bookmarks",
		IconColor: SecondaryText,
		Color:     SecondaryText,
	},
	model.TypeQuote: {
		Icon:      "❝",
		Title:     "Quotes",
		IconColor: SecondaryText,
		Color:     SecondaryText,
	},
}

// Reminder state glyphs
const (
	IconCompleted = "✓"
	IconOpen      = "○"
)

// Lookup returns the metadata for t. Unknown types get the thought entry.
func Lookup(t model.Type) Info {
	if info, ok := registry[t]; ok {
		return info
	}
	return registry[model.TypeThought]
}

// Icon returns the glyph for t.
func Icon(t model.Type) string { return Lookup(t).Icon }

// Title returns the list-section title for t.
func Title(t model.Type) string { return Lookup(t).Title }

// IconColor returns the icon tint for t.
func IconColor(t model.Type) lipgloss.TerminalColor { return Lookup(t).IconColor }

// Color returns the accent color for t.
func Color(t model.Type) lipgloss.TerminalColor { return Lookup(t).Color }

// IsValid reports whether s names a registered type.
func IsValid(s string) bool {
	_, ok := registry[model.Type(s)]
	return ok
}
