package layout

// CalculateModalWidth computes a modal width as a percentage of the
// terminal width, clamped to the configured bounds and the terminal.
func CalculateModalWidth(terminalWidth int, cfg ModalConfig) int {
	width := terminalWidth * cfg.WidthPercent / 100

	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}

	if width > terminalWidth-4 {
		width = terminalWidth - 4
	}
	if width < 1 {
		return 1
	}

	return width
}
