package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds dimensions of the Blink list and its detail pane.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for list content.
	// Accounts for: app padding (1) + header (2) + pane borders (2) + help bar (2) = 7
	HeightReduction int

	// MinHeight is the minimum list height.
	MinHeight int

	// DetailWidthPercent is the share of the width given to the detail pane.
	DetailWidthPercent int

	// MinSplitWidth is the narrowest terminal that shows list and detail
	// side by side. Narrower terminals show only one of them.
	MinSplitWidth int

	// PaneOverhead is the border and padding width of one pane.
	PaneOverhead int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// WidthPercent is the modal width as percentage of terminal width.
	WidthPercent int

	MinWidth int
	MaxWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit  int
	FilterCharLimit int

	TitleWidth  int
	FilterWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction:    7,
			MinHeight:          5,
			DetailWidthPercent: 45,
			MinSplitWidth:      90,
			PaneOverhead:       4,
		},
		Modal: ModalConfig{
			WidthPercent: 50,
			MinWidth:     40,
			MaxWidth:     80,
		},
		Input: InputConfig{
			TitleCharLimit:  200,
			FilterCharLimit: 50,
			TitleWidth:      50,
			FilterWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
