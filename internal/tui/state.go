package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/blink/internal/model"
	"github.com/nikbrunner/blink/internal/tui/layout"
)

// Mode is the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeDetail
	ModeConfirmDelete
	ModeEditTitle
	ModeHelp
)

// MessageType selects the styling of the message line.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// FilterState holds the fuzzy filter input.
type FilterState struct {
	Input textinput.Model
	Query string // active query, persists after the input closes
}

// NewFilterState creates a FilterState with an initialized input.
func NewFilterState(cfg layout.LayoutConfig) FilterState {
	input := textinput.New()
	input.Placeholder = "Filter..."
	input.CharLimit = cfg.Input.FilterCharLimit
	input.Width = cfg.Input.FilterWidth
	return FilterState{Input: input}
}

// Reset clears the filter.
func (f *FilterState) Reset() {
	f.Input.Reset()
	f.Query = ""
}

// ModalState holds state for the confirm and edit modals.
type ModalState struct {
	TitleInput textinput.Model
	Target     *model.Blink // Blink being deleted or edited
	ReturnMode Mode         // mode to restore when the modal closes
}

// NewModalState creates a ModalState with an initialized input.
func NewModalState(cfg layout.LayoutConfig) ModalState {
	input := textinput.New()
	input.Placeholder = "Title"
	input.CharLimit = cfg.Input.TitleCharLimit
	input.Width = cfg.Input.TitleWidth
	return ModalState{TitleInput: input}
}

// Reset clears the modal for the next use.
func (m *ModalState) Reset() {
	m.TitleInput.Reset()
	m.TitleInput.Blur()
	m.Target = nil
	m.ReturnMode = ModeNormal
}

// ListState holds the loaded Blinks and the visible rows.
type ListState struct {
	Blinks   []model.Blink
	Rows     []Row
	Cursor   int // index into Rows, always on a Blink row when any exist
	Sort     model.SortOption
	Sections bool
	Loading  bool
}
