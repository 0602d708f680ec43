package exporter

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/blink/internal/importer"
	"github.com/nikbrunner/blink/internal/model"
)

func TestExportHTML_Empty(t *testing.T) {
	html := ExportHTML(nil)

	if !strings.Contains(html, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Error("expected DOCTYPE declaration")
	}
	if !strings.Contains(html, "<TITLE>Blinks</TITLE>") {
		t.Error("expected TITLE element")
	}
	if strings.Contains(html, "<H3") {
		t.Error("expected no sections for an empty list")
	}
}

func TestExportHTML_Bookmark(t *testing.T) {
	html := ExportHTML([]model.Blink{{
		ID:          "b1",
		Type:        model.TypeBookmark,
		Title:       "GitHub",
		Source:      "https://github.com",
		Description: "Code hosting.",
		CreatedOn:   time.Unix(1700000000, 0),
	}})

	if !strings.Contains(html, `<A HREF="https://github.com"`) {
		t.Error("expected source URL")
	}
	if !strings.Contains(html, "GitHub</A>") {
		t.Error("expected title")
	}
	if !strings.Contains(html, `ADD_DATE="1700000000"`) {
		t.Error("expected ADD_DATE timestamp")
	}
	if !strings.Contains(html, "<DD>Code hosting.") {
		t.Error("expected description")
	}
}

func TestExportHTML_SectionsInTypeOrder(t *testing.T) {
	due := time.Date(2025, 3, 2, 14, 0, 0, 0, time.UTC)
	html := ExportHTML([]model.Blink{
		{ID: "q", Type: model.TypeQuote, Title: "Be yourself", Author: "Oscar Wilde", CreatedOn: time.Unix(3, 0)},
		{ID: "t", Type: model.TypeThought, Title: "Buy milk", CreatedOn: time.Unix(2, 0)},
		{ID: "r", Type: model.TypeReminder, Title: "Call mom", ReminderDate: &due, CreatedOn: time.Unix(1, 0)},
	})

	reminders := strings.Index(html, "Reminders</H3>")
	thoughts := strings.Index(html, "Thoughts</H3>")
	quotes := strings.Index(html, "Quotes</H3>")
	if reminders == -1 || thoughts == -1 || quotes == -1 {
		t.Fatal("missing sections in output")
	}
	if !(reminders < thoughts && thoughts < quotes) {
		t.Error("expected sections in display order")
	}
	if strings.Contains(html, "Bookmarks</H3>") {
		t.Error("expected empty sections to be omitted")
	}
	if !strings.Contains(html, "<DD>— Oscar Wilde") {
		t.Error("expected author detail")
	}
	if !strings.Contains(html, "Due 2025-03-02 14:00") {
		t.Error("expected reminder date detail")
	}
}

func TestExportHTML_EscapesSpecialCharacters(t *testing.T) {
	html := ExportHTML([]model.Blink{{
		ID:        "b1",
		Type:      model.TypeBookmark,
		Title:     "Test <script>alert('xss')</script>",
		Source:    "https://example.com?foo=bar&baz=qux",
		CreatedOn: time.Now(),
	}})

	if strings.Contains(html, "<script>") {
		t.Error("script tag should be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("expected escaped script tag")
	}
	if strings.Contains(html, "foo=bar&baz") {
		t.Error("ampersand should be escaped in URL")
	}
	if !strings.Contains(html, "foo=bar&amp;baz") {
		t.Error("expected escaped ampersand in URL")
	}
}

func TestExportHTML_ImportsBackAsBookmarks(t *testing.T) {
	html := ExportHTML([]model.Blink{
		{ID: "b1", Type: model.TypeBookmark, Title: "Go", Source: "https://go.dev", CreatedOn: time.Unix(1700000000, 0)},
		{ID: "t1", Type: model.TypeThought, Title: "Buy milk", CreatedOn: time.Unix(1700000000, 0)},
	})

	blinks, err := importer.ParseHTMLBookmarks(strings.NewReader(html), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blinks) != 1 {
		t.Fatalf("expected only the sourced blink back, got %d", len(blinks))
	}
	if blinks[0].Source != "https://go.dev" || blinks[0].Description != "Imported from Bookmarks" {
		t.Errorf("unexpected import %+v", blinks[0])
	}
}
