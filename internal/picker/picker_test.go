package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/blink/internal/model"
	"github.com/nikbrunner/blink/internal/search"
)

func twoResults() []search.Result {
	return []search.Result{
		{Blink: &model.Blink{ID: "b1", Type: model.TypeBookmark, Title: "GitHub", Source: "https://github.com"}},
		{Blink: &model.Blink{ID: "b2", Type: model.TypeQuote, Title: "Git happens", Author: "Linus"}},
	}
}

func update(p Picker, msg tea.Msg) (Picker, tea.Cmd) {
	m, cmd := p.Update(msg)
	return m.(Picker), cmd
}

func TestPicker_InitialState(t *testing.T) {
	p := New(twoResults(), "git")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.results) != 2 {
		t.Errorf("expected 2 results, got %d", len(p.results))
	}
}

func TestPicker_NavigateDown(t *testing.T) {
	p, _ := update(New(twoResults(), "git"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}
}

func TestPicker_NavigateUp(t *testing.T) {
	p := New(twoResults(), "git")
	p.cursor = 1

	p, _ = update(p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
}

func TestPicker_BoundsCheck(t *testing.T) {
	p := New(twoResults()[:1], "git")

	p, _ = update(p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}

	p, _ = update(p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 (only 1 item), got %d", p.cursor)
	}
}

func TestPicker_SelectItem(t *testing.T) {
	p := New(twoResults(), "git")
	p.cursor = 1

	p, cmd := update(p, tea.KeyMsg{Type: tea.KeyEnter})

	if !p.selected {
		t.Error("expected selected to be true after Enter")
	}
	if cmd == nil {
		t.Error("expected quit command after selection")
	}
	if got := p.Selected(); got == nil || got.ID != "b2" {
		t.Errorf("expected b2 to be selected, got %v", got)
	}
}

func TestPicker_Cancel(t *testing.T) {
	p, cmd := update(New(twoResults(), "git"), tea.KeyMsg{Type: tea.KeyEsc})

	if !p.cancelled {
		t.Error("expected cancelled to be true after Esc")
	}
	if cmd == nil {
		t.Error("expected quit command after cancel")
	}
	if p.Selected() != nil {
		t.Error("expected nil when cancelled")
	}
}

func TestPicker_ArrowKeys(t *testing.T) {
	p, _ := update(New(twoResults(), "git"), tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1 after down arrow, got %d", p.cursor)
	}

	p, _ = update(p, tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 after up arrow, got %d", p.cursor)
	}
}

func TestPicker_View(t *testing.T) {
	view := New(twoResults(), "git").View()

	for _, want := range []string{"Search: git (2 results)", "GitHub", "https://github.com", "Linus"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
