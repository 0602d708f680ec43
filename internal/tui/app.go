package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/blink/internal/capture"
	"github.com/nikbrunner/blink/internal/model"
	"github.com/nikbrunner/blink/internal/search"
	"github.com/nikbrunner/blink/internal/tui/layout"
)

// Store is the part of the storage the list works with.
type Store interface {
	List(ctx context.Context) ([]model.Blink, error)
	Delete(ctx context.Context, id string) error
	ToggleCompletion(ctx context.Context, id string) error
}

// Editor saves edits to a Blink.
type Editor interface {
	Edit(ctx context.Context, id string, form capture.EditForm) (model.Blink, error)
}

// App is the main bubbletea model for the Blink list.
type App struct {
	store        Store
	editor       Editor
	copy         func(string) error
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	now          func() time.Time

	mode   Mode
	list   ListState
	filter FilterState
	modal  ModalState

	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store  Store
	Editor Editor             // optional, editing is disabled without it
	Copy   func(string) error // optional, defaults to the system clipboard
	Keys   *KeyMap            // optional, uses default if nil
	Styles *Styles            // optional, uses default if nil
	Now    func() time.Time   // optional
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	copyFn := params.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	cfg := layout.DefaultConfig()

	return App{
		store:        params.Store,
		editor:       params.Editor,
		copy:         copyFn,
		keys:         keys,
		styles:       styles,
		layoutConfig: cfg,
		now:          now,
		mode:         ModeNormal,
		list: ListState{
			Sort:     model.SortNewest,
			Sections: true,
			Loading:  true,
		},
		filter: NewFilterState(cfg),
		modal:  NewModalState(cfg),
		width:  80,
		height: 24,
	}
}

// blinksLoadedMsg carries the result of a List call.
type blinksLoadedMsg struct {
	blinks []model.Blink
	err    error
}

// actionDoneMsg reports a finished mutation. The list reloads afterwards.
type actionDoneMsg struct {
	success string
	failure string
	err     error
}

func (a App) load() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		blinks, err := store.List(context.Background())
		return blinksLoadedMsg{blinks: blinks, err: err}
	}
}

func (a App) toggle(b model.Blink) tea.Cmd {
	store := a.store
	return func() tea.Msg {
		err := store.ToggleCompletion(context.Background(), b.ID)
		success := "Reminder removed"
		if b.IsCompleted {
			success = "Reminder reset"
		}
		return actionDoneMsg{success: success, failure: "Error updating reminder", err: err}
	}
}

func (a App) remove(b model.Blink) tea.Cmd {
	store := a.store
	return func() tea.Msg {
		err := store.Delete(context.Background(), b.ID)
		return actionDoneMsg{success: "Blink deleted", failure: "Error deleting Blink", err: err}
	}
}

func (a App) edit(b model.Blink, title string) tea.Cmd {
	editor := a.editor
	return func() tea.Msg {
		form := capture.FormFor(b)
		form.Title = title
		_, err := editor.Edit(context.Background(), b.ID, form)
		return actionDoneMsg{
			success: fmt.Sprintf("%q saved", title),
			failure: "Error updating Blink",
			err:     err,
		}
	}
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Rows returns the visible list rows.
func (a App) Rows() []Row {
	return a.list.Rows
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.list.Cursor
}

// Message returns the current status message.
func (a App) Message() string {
	return a.messageText
}

// Selected returns the Blink under the cursor, or nil.
func (a App) Selected() *model.Blink {
	if a.list.Cursor < 0 || a.list.Cursor >= len(a.list.Rows) {
		return nil
	}
	row := a.list.Rows[a.list.Cursor]
	if !row.IsBlink() {
		return nil
	}
	return row.Blink
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.load()
}

// refreshRows rebuilds the rows from the loaded Blinks, keeping the cursor
// on the same Blink when it is still visible.
func (a *App) refreshRows() {
	var keep string
	if b := a.Selected(); b != nil {
		keep = b.ID
	}

	visible := search.Filter(a.list.Blinks, a.filter.Query)
	a.list.Rows = buildRows(visible, a.list.Sort, a.list.Sections)

	a.list.Cursor = 0
	for i, row := range a.list.Rows {
		if row.IsBlink() && row.Blink.ID == keep {
			a.list.Cursor = i
			return
		}
	}
	a.snapCursor(1)
}

// snapCursor moves the cursor off section rows in direction dir.
func (a *App) snapCursor(dir int) {
	rows := a.list.Rows
	for i := a.list.Cursor; i >= 0 && i < len(rows); i += dir {
		if rows[i].IsBlink() {
			a.list.Cursor = i
			return
		}
	}
	for i := a.list.Cursor; i >= 0 && i < len(rows); i -= dir {
		if rows[i].IsBlink() {
			a.list.Cursor = i
			return
		}
	}
	a.list.Cursor = 0
}

func (a *App) moveCursor(dir int) {
	for i := a.list.Cursor + dir; i >= 0 && i < len(a.list.Rows); i += dir {
		if a.list.Rows[i].IsBlink() {
			a.list.Cursor = i
			return
		}
	}
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case blinksLoadedMsg:
		a.list.Loading = false
		if msg.err != nil {
			a.setMessage(MessageError, "Error loading Blinks: "+msg.err.Error())
			return a, nil
		}
		a.list.Blinks = msg.blinks
		a.refreshRows()
		if a.mode == ModeDetail && a.Selected() == nil {
			a.mode = ModeNormal
		}
		return a, nil

	case actionDoneMsg:
		if msg.err != nil {
			a.setMessage(MessageError, msg.failure+": "+msg.err.Error())
		} else {
			a.setMessage(MessageSuccess, msg.success)
		}
		return a, a.load()

	case tea.KeyMsg:
		switch a.mode {
		case ModeFilter:
			return a.updateFilter(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeEditTitle:
			return a.updateEditTitle(msg)
		case ModeHelp:
			a.mode = ModeNormal
			return a, nil
		}
		return a.updateNormal(msg)
	}

	return a, nil
}

// updateNormal handles keys in the list and detail modes.
func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.list.Cursor = 0
			a.snapCursor(1)
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)

	case key.Matches(msg, a.keys.Bottom):
		if len(a.list.Rows) > 0 {
			a.list.Cursor = len(a.list.Rows) - 1
			a.snapCursor(-1)
		}

	case key.Matches(msg, a.keys.Open):
		if a.Selected() != nil {
			a.mode = ModeDetail
		}

	case key.Matches(msg, a.keys.Back):
		switch {
		case a.mode == ModeDetail:
			a.mode = ModeNormal
		case a.filter.Query != "":
			a.filter.Reset()
			a.refreshRows()
		}

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filter.Input.SetValue(a.filter.Query)
		a.filter.Input.CursorEnd()
		return a, a.filter.Input.Focus()

	case key.Matches(msg, a.keys.Sort):
		a.list.Sort = a.list.Sort.Next()
		a.refreshRows()

	case key.Matches(msg, a.keys.Sections):
		a.list.Sections = !a.list.Sections
		a.refreshRows()

	case key.Matches(msg, a.keys.Refresh):
		return a, a.load()

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Toggle):
		b := a.Selected()
		if b == nil {
			return a, nil
		}
		if !b.IsReminder() {
			a.setMessage(MessageWarning, "Only reminders can be completed")
			return a, nil
		}
		return a, a.toggle(*b)

	case key.Matches(msg, a.keys.Delete):
		if b := a.Selected(); b != nil {
			a.modal.ReturnMode = a.mode
			a.modal.Target = b
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.Edit):
		b := a.Selected()
		if b == nil {
			return a, nil
		}
		if a.editor == nil {
			a.setMessage(MessageWarning, "Editing is not available")
			return a, nil
		}
		a.modal.ReturnMode = a.mode
		a.modal.Target = b
		a.modal.TitleInput.SetValue(b.Title)
		a.modal.TitleInput.CursorEnd()
		a.mode = ModeEditTitle
		return a, a.modal.TitleInput.Focus()

	case key.Matches(msg, a.keys.YankTitle):
		if b := a.Selected(); b != nil {
			a.yank(b.Title, "Title")
		}

	case key.Matches(msg, a.keys.YankSource):
		b := a.Selected()
		if b == nil {
			return a, nil
		}
		if b.Source == "" {
			a.setMessage(MessageWarning, "No source to copy")
			return a, nil
		}
		a.yank(b.Source, "Source")
	}

	return a, nil
}

func (a *App) yank(text, what string) {
	if err := a.copy(text); err != nil {
		a.setMessage(MessageError, "Copy failed: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, what+" copied")
}

// updateFilter narrows the list as the query is typed.
func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.filter.Input.Blur()
		a.filter.Reset()
		a.refreshRows()
		return a, nil

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.filter.Input.Blur()
		return a, nil

	case tea.KeyDown, tea.KeyCtrlN:
		a.moveCursor(1)
		return a, nil

	case tea.KeyUp, tea.KeyCtrlP:
		a.moveCursor(-1)
		return a, nil
	}

	var cmd tea.Cmd
	a.filter.Input, cmd = a.filter.Input.Update(msg)
	if q := strings.TrimSpace(a.filter.Input.Value()); q != a.filter.Query {
		a.filter.Query = q
		a.list.Cursor = 0
		a.refreshRows()
	}
	return a, cmd
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := a.modal.Target
	returnMode := a.modal.ReturnMode
	switch {
	case msg.String() == "y" || msg.Type == tea.KeyEnter:
		a.modal.Reset()
		a.mode = ModeNormal
		if target == nil {
			return a, nil
		}
		return a, a.remove(*target)

	case msg.String() == "n" || msg.Type == tea.KeyEsc || msg.String() == "q":
		a.modal.Reset()
		a.mode = returnMode
	}
	return a, nil
}

func (a App) updateEditTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		returnMode := a.modal.ReturnMode
		a.modal.Reset()
		a.mode = returnMode
		return a, nil

	case tea.KeyEnter:
		title := strings.TrimSpace(a.modal.TitleInput.Value())
		if title == "" {
			a.setMessage(MessageWarning, "Title is required")
			return a, nil
		}
		target := a.modal.Target
		returnMode := a.modal.ReturnMode
		a.modal.Reset()
		a.mode = returnMode
		if target == nil {
			return a, nil
		}
		return a, a.edit(*target, title)
	}

	var cmd tea.Cmd
	a.modal.TitleInput, cmd = a.modal.TitleInput.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
