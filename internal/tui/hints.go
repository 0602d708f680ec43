package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move x:done d:del"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "y delete  n cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, enter, etc.)
	Edit   []Hint // Edit hints (x, e, d, etc.)
	Action []Hint // Action hints (/, o, s, y)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeDetail:
		return a.getDetailModeHints()
	case ModeFilter:
		return HintSet{
			Nav:    []Hint{{Key: "↑/↓", Desc: "move"}, {Key: "type", Desc: "filter"}},
			Action: []Hint{{Key: "Enter", Desc: "apply"}},
			System: []Hint{{Key: "Esc", Desc: "clear"}},
		}
	case ModeEditTitle:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeHelp:
		return HintSet{System: []Hint{{Key: "any key", Desc: "close"}}}
	default:
		// Confirm modal shows its own hints.
		return HintSet{}
	}
}

// getNormalModeHints returns hints for the list.
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "enter", Desc: "open"},
		},
		Action: []Hint{
			{Key: "/", Desc: "filter"},
			{Key: "o", Desc: "sort"},
			{Key: "s", Desc: "sections"},
		},
		Edit: []Hint{
			{Key: "e", Desc: "edit"},
			{Key: "d", Desc: "del"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
	if b := a.Selected(); b != nil && b.IsReminder() {
		hints.Edit = append([]Hint{{Key: "x", Desc: "done"}}, hints.Edit...)
	}
	if a.filter.Query != "" {
		hints.System = append([]Hint{{Key: "esc", Desc: "clear filter"}}, hints.System...)
	}
	return hints
}

// getDetailModeHints returns hints for the detail view.
func (a App) getDetailModeHints() HintSet {
	hints := HintSet{
		Nav:    []Hint{{Key: "j/k", Desc: "move"}},
		Action: []Hint{{Key: "y", Desc: "copy title"}},
		Edit:   []Hint{{Key: "e", Desc: "edit"}, {Key: "d", Desc: "del"}},
		System: []Hint{{Key: "esc", Desc: "back"}, {Key: "q", Desc: "quit"}},
	}
	if b := a.Selected(); b != nil && b.Source != "" {
		hints.Action = append(hints.Action, Hint{Key: "Y", Desc: "copy source"})
	}
	return hints
}
