package notion

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// maxTextLen is the per-item content limit Notion enforces on rich text.
const maxTextLen = 2000

// Page is a Notion page object. Partial pages carry only object and id.
type Page struct {
	Object      string                   `json:"object"`
	ID          string                   `json:"id"`
	CreatedTime time.Time                `json:"created_time"`
	Archived    bool                     `json:"archived"`
	Parent      Parent                   `json:"parent"`
	Properties  map[string]PropertyValue `json:"properties"`
}

// IsFull reports whether p is a complete page rather than a stub.
func (p Page) IsFull() bool {
	return p.Object == "page" && p.Properties != nil
}

// Parent identifies where a page lives.
type Parent struct {
	Type         string `json:"type"`
	DatabaseID   string `json:"database_id,omitempty"`
	DataSourceID string `json:"data_source_id,omitempty"`
	PageID       string `json:"page_id,omitempty"`
}

// Database is the subset of a database object we read.
type Database struct {
	Object      string          `json:"object"`
	ID          string          `json:"id"`
	DataSources []DataSourceRef `json:"data_sources"`
}

type DataSourceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// QueryResponse is a paginated list of pages.
type QueryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Cursor returns the continuation cursor, or "" when the list is exhausted.
func (r QueryResponse) Cursor() string {
	if !r.HasMore || r.NextCursor == nil {
		return ""
	}
	return *r.NextCursor
}

type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// PropertyValue is one typed page property. Only the field matching Type
// is meaningful. A nil Date or URL encodes as JSON null, which clears it.
type PropertyValue struct {
	Type     string        `json:"type"`
	Title    []RichText    `json:"title"`
	RichText []RichText    `json:"rich_text"`
	Select   *SelectOption `json:"select"`
	URL      *string       `json:"url"`
	Date     *DateValue    `json:"date"`
	Checkbox bool          `json:"checkbox"`
}

// MarshalJSON writes only the key for p.Type, as the pages endpoints expect.
func (p PropertyValue) MarshalJSON() ([]byte, error) {
	var v any
	switch p.Type {
	case "title":
		v = p.Title
	case "rich_text":
		v = p.RichText
	case "select":
		v = p.Select
	case "url":
		v = p.URL
	case "date":
		v = p.Date
	case "checkbox":
		v = p.Checkbox
	default:
		return nil, fmt.Errorf("notion: cannot encode property of type %q", p.Type)
	}
	return json.Marshal(map[string]any{p.Type: v})
}

// Property constructors.

func TitleProperty(s string) PropertyValue {
	return PropertyValue{Type: "title", Title: textChunks(s)}
}

func RichTextProperty(s string) PropertyValue {
	return PropertyValue{Type: "rich_text", RichText: textChunks(s)}
}

func SelectProperty(name string) PropertyValue {
	return PropertyValue{Type: "select", Select: &SelectOption{Name: name}}
}

func URLProperty(u string) PropertyValue {
	return PropertyValue{Type: "url", URL: &u}
}

func DateProperty(t time.Time) PropertyValue {
	return PropertyValue{Type: "date", Date: &DateValue{Start: t.Format(time.RFC3339Nano)}}
}

// ClearDateProperty sets a date property to null.
func ClearDateProperty() PropertyValue {
	return PropertyValue{Type: "date"}
}

func CheckboxProperty(b bool) PropertyValue {
	return PropertyValue{Type: "checkbox", Checkbox: b}
}

// PlainText joins rich text pieces. Pieces without plain_text (as sent in
// requests) fall back to their text content.
func PlainText(pieces []RichText) string {
	var b strings.Builder
	for _, rt := range pieces {
		switch {
		case rt.PlainText != "":
			b.WriteString(rt.PlainText)
		case rt.Text != nil:
			b.WriteString(rt.Text.Content)
		}
	}
	return b.String()
}

// ParseDate reads a Notion date start, which is either a full timestamp or
// a bare date.
func ParseDate(d *DateValue) (time.Time, bool) {
	if d == nil || d.Start == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, d.Start); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", d.Start, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func textChunks(s string) []RichText {
	runes := []rune(s)
	chunks := make([]RichText, 0, len(runes)/maxTextLen+1)
	for len(runes) > 0 {
		n := min(len(runes), maxTextLen)
		chunks = append(chunks, RichText{Type: "text", Text: &TextContent{Content: string(runes[:n])}})
		runes = runes[n:]
	}
	return chunks
}
