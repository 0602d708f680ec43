package layout

// Split holds the widths of the list and detail panes. A zero width means
// the pane is hidden.
type Split struct {
	ListWidth   int
	DetailWidth int
}

// CalculateListHeight computes the content height of the list.
// Returns at least MinHeight.
func CalculateListHeight(terminalHeight int, cfg ListConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateSplit divides the terminal between list and detail. Below
// MinSplitWidth only the focused pane is shown.
func CalculateSplit(terminalWidth int, detailFocused bool, cfg ListConfig) Split {
	if terminalWidth < cfg.MinSplitWidth {
		if detailFocused {
			return Split{DetailWidth: terminalWidth}
		}
		return Split{ListWidth: terminalWidth}
	}

	detail := terminalWidth * cfg.DetailWidthPercent / 100
	return Split{ListWidth: terminalWidth - detail, DetailWidth: detail}
}

// ContentWidth is the width left inside a pane of the given width.
func ContentWidth(paneWidth int, cfg ListConfig) int {
	width := paneWidth - cfg.PaneOverhead
	if width < 1 {
		return 1
	}
	return width
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected row visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
