package design

import (
	"testing"

	"github.com/nikbrunner/blink/internal/model"
)

func TestRegistryCoversAllTypes(t *testing.T) {
	for _, typ := range model.Types {
		info, ok := registry[typ]
		if !ok {
			t.Fatalf("no design entry for %s", typ)
		}
		if info.Icon == "" || info.Title == "" {
			t.Errorf("%s: incomplete entry %+v", typ, info)
		}
	}
}

func TestTitle(t *testing.T) {
	tests := map[model.Type]string{
		model.TypeThought:  "Thoughts",
		model.TypeReminder: "Reminders",
		model.TypeBookmark: "Bookmarks",
		model.TypeQuote:    "Quotes",
	}
	for typ, want := range tests {
		if got := Title(typ); got != want {
			t.Errorf("Title(%s) = %q, want %q", typ, got, want)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("quote") {
		t.Error("quote should be valid")
	}
	if IsValid("Quote") || IsValid("task") || IsValid("") {
		t.Error("only lowercase registered names are valid")
	}
}
