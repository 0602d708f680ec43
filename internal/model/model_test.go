package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nikbrunner/blink/internal/model"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    model.Type
		wantErr bool
	}{
		{"thought", model.TypeThought, false},
		{"Reminder", model.TypeReminder, false},
		{" BOOKMARK ", model.TypeBookmark, false},
		{"quote", model.TypeQuote, false},
		{"note", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := model.ParseType(tt.in)
			if tt.wantErr {
				if !errors.Is(err, model.ErrInvalidType) {
					t.Fatalf("expected ErrInvalidType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestType_Display(t *testing.T) {
	if got := model.TypeReminder.Display(); got != "Reminder" {
		t.Errorf("got %q, want Reminder", got)
	}
	if got := model.Type("").Display(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestNewBlink_DropsForeignFields(t *testing.T) {
	date := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)

	thought := model.NewBlink(model.NewBlinkParams{
		Type:         model.TypeThought,
		Title:        "Idea",
		Author:       "Someone",
		ReminderDate: &date,
	})
	if thought.Author != "" || thought.ReminderDate != nil {
		t.Errorf("thought kept foreign fields: %+v", thought)
	}
	if thought.ID == "" {
		t.Error("expected generated id")
	}
	if thought.CreatedOn.IsZero() {
		t.Error("expected createdOn to be set")
	}

	reminder := model.NewBlink(model.NewBlinkParams{
		Type:         model.TypeReminder,
		Title:        "Call mom",
		ReminderDate: &date,
	})
	if reminder.ReminderDate == nil || !reminder.ReminderDate.Equal(date) {
		t.Errorf("reminder date lost: %+v", reminder.ReminderDate)
	}
}

func TestNewBlink_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		b := model.NewBlink(model.NewBlinkParams{Type: model.TypeThought, Title: "x"})
		if seen[b.ID] {
			t.Fatalf("duplicate id %s", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestBlink_Validate(t *testing.T) {
	date := time.Now()

	tests := []struct {
		name    string
		blink   model.Blink
		wantErr bool
	}{
		{"valid thought", model.Blink{Type: model.TypeThought, Title: "x"}, false},
		{"empty title", model.Blink{Type: model.TypeThought, Title: "  "}, true},
		{"invalid type", model.Blink{Type: "note", Title: "x"}, true},
		{"date on thought", model.Blink{Type: model.TypeThought, Title: "x", ReminderDate: &date}, true},
		{"author on bookmark", model.Blink{Type: model.TypeBookmark, Title: "x", Author: "a"}, true},
		{"author on quote", model.Blink{Type: model.TypeQuote, Title: "x", Author: "a"}, false},
		{"completedAt without completion", model.Blink{Type: model.TypeReminder, Title: "x", CompletedAt: &date}, true},
		{"completed reminder", model.Blink{Type: model.TypeReminder, Title: "x", IsCompleted: true, CompletedAt: &date}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.blink.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBlink_JSONOmitsAbsentFields(t *testing.T) {
	b := model.Blink{
		ID:        "b1",
		Type:      model.TypeThought,
		Title:     "Idea",
		CreatedOn: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	for _, key := range []string{"author", "reminderDate", "completedAt", "isCompleted", "source"} {
		if _, ok := raw[key]; ok {
			t.Errorf("expected %q to be omitted", key)
		}
	}
}

func TestSort_RemindersByDate(t *testing.T) {
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	blinks := []model.Blink{
		{ID: "late", Type: model.TypeReminder, Title: "a", ReminderDate: timePtr(base.Add(48 * time.Hour))},
		{ID: "undated", Type: model.TypeReminder, Title: "b"},
		{ID: "early", Type: model.TypeReminder, Title: "c", ReminderDate: timePtr(base)},
	}

	got := model.Sort(blinks, model.SortNewest)
	want := []string{"early", "late", "undated"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestSort_NewestAndTitle(t *testing.T) {
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	blinks := []model.Blink{
		{ID: "old", Type: model.TypeThought, Title: "Zebra", CreatedOn: base},
		{ID: "new", Type: model.TypeThought, Title: "apple", CreatedOn: base.Add(time.Hour)},
	}

	newest := model.Sort(blinks, model.SortNewest)
	if newest[0].ID != "new" {
		t.Errorf("newest first: got %s", newest[0].ID)
	}

	byTitle := model.Sort(blinks, model.SortTitle)
	if byTitle[0].ID != "new" {
		t.Errorf("title sort should be case-insensitive, got %s first", byTitle[0].ID)
	}

	// input untouched
	if blinks[0].ID != "old" {
		t.Error("Sort mutated its input")
	}
}

func TestGroupByType_Order(t *testing.T) {
	blinks := []model.Blink{
		{ID: "q", Type: model.TypeQuote, Title: "q"},
		{ID: "t", Type: model.TypeThought, Title: "t"},
		{ID: "r", Type: model.TypeReminder, Title: "r"},
	}

	sections := model.GroupByType(blinks, model.SortNewest)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections (bookmark omitted), got %d", len(sections))
	}
	want := []model.Type{model.TypeReminder, model.TypeThought, model.TypeQuote}
	for i, typ := range want {
		if sections[i].Type != typ {
			t.Errorf("section %d: got %s, want %s", i, sections[i].Type, typ)
		}
	}
}

func TestFindByID(t *testing.T) {
	blinks := []model.Blink{{ID: "a"}, {ID: "b"}}
	if got := model.FindByID(blinks, "b"); got == nil || got.ID != "b" {
		t.Errorf("expected to find b, got %v", got)
	}
	if got := model.FindByID(blinks, "zzz"); got != nil {
		t.Error("expected nil for unknown id")
	}
}
