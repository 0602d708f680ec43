package layout

import "github.com/charmbracelet/x/ansi"

// StripANSI removes terminal escape sequences.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// Truncate cuts s to width terminal cells and marks the cut with the
// configured ellipsis. Wide glyphs count as two cells. When the ellipsis
// itself does not fit the text is cut bare.
func Truncate(s string, width int, cfg TextConfig) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(cfg.Ellipsis) >= width {
		return ansi.Truncate(s, width, "")
	}
	return ansi.Truncate(s, width, cfg.Ellipsis)
}

// Row renders a list row as "icon title" within width cells. Only the
// title is shortened unless the icon alone overflows.
func Row(icon, title string, width int, cfg TextConfig) string {
	prefix := icon + " "
	prefixWidth := ansi.StringWidth(prefix)
	if prefixWidth > width {
		return Truncate(prefix+title, width, cfg)
	}
	return prefix + Truncate(title, width-prefixWidth, cfg)
}
