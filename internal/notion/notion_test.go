package notion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

const testDatabaseID = "db-1"

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientParams{Token: "secret", BaseURL: srv.URL})
	assert.NilError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func TestNewClient_NoToken(t *testing.T) {
	_, err := NewClient(ClientParams{})
	assert.Assert(t, errors.Is(err, ErrNoToken))
}

func TestClient_Headers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pages/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Header.Get("Authorization"), "Bearer secret")
		assert.Equal(t, r.Header.Get("Notion-Version"), DefaultVersion)
		assert.Equal(t, r.PathValue("id"), "p1")
		writeJSON(w, `{"object":"page","id":"p1","properties":{}}`)
	})

	page, err := newTestClient(t, mux).RetrievePage(context.Background(), "p1")
	assert.NilError(t, err)
	assert.Equal(t, page.ID, "p1")
	assert.Assert(t, page.IsFull())
}

func TestClient_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pages/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, `{"object":"error","status":404,"code":"object_not_found","message":"Could not find page"}`)
	})
	mux.HandleFunc("GET /databases/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	c := newTestClient(t, mux)

	_, err := c.RetrievePage(context.Background(), "missing")
	assert.Assert(t, errors.Is(err, ErrNotFound))
	var apiErr *APIError
	assert.Assert(t, errors.As(err, &apiErr))
	assert.Equal(t, apiErr.Code, "object_not_found")

	_, err = c.RetrieveDatabase(context.Background(), "db")
	assert.Assert(t, errors.As(err, &apiErr))
	assert.Equal(t, apiErr.Status, http.StatusBadGateway)
	assert.Equal(t, apiErr.Message, "upstream down")
	assert.Assert(t, !errors.Is(err, ErrNotFound))
}

func TestPropertyValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		prop PropertyValue
		want string
	}{
		{"title", TitleProperty("Hi"), `{"title":[{"type":"text","text":{"content":"Hi"}}]}`},
		{"select", SelectProperty("Thought"), `{"select":{"name":"Thought"}}`},
		{"url", URLProperty("https://go.dev"), `{"url":"https://go.dev"}`},
		{"checkbox false", CheckboxProperty(false), `{"checkbox":false}`},
		{"cleared date", ClearDateProperty(), `{"date":null}`},
		{
			"date",
			DateProperty(time.Date(2025, 3, 2, 14, 0, 0, 0, time.UTC)),
			`{"date":{"start":"2025-03-02T14:00:00Z"}}`,
		},
		{
			"date with fraction",
			DateProperty(time.Date(2025, 3, 2, 14, 0, 0, 123456789, time.UTC)),
			`{"date":{"start":"2025-03-02T14:00:00.123456789Z"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.prop)
			assert.NilError(t, err)
			assert.Equal(t, string(data), tt.want)
		})
	}

	_, err := json.Marshal(PropertyValue{Type: "formula"})
	assert.ErrorContains(t, err, "formula")
}

func TestTextChunks(t *testing.T) {
	long := strings.Repeat("a", 4500)
	chunks := RichTextProperty(long).RichText
	assert.Equal(t, len(chunks), 3)
	assert.Equal(t, len(chunks[0].Text.Content), maxTextLen)
	assert.Equal(t, PlainText(chunks), long)

	assert.Equal(t, len(RichTextProperty("").RichText), 0)
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate(&DateValue{Start: "2025-03-02T14:00:00.000+01:00"})
	assert.Assert(t, ok)
	assert.Assert(t, got.Equal(time.Date(2025, 3, 2, 13, 0, 0, 0, time.UTC)))

	got, ok = ParseDate(&DateValue{Start: "2025-03-02"})
	assert.Assert(t, ok)
	assert.Equal(t, got.Day(), 2)

	want := time.Date(2025, 3, 1, 12, 0, 0, 123456789, time.UTC)
	got, ok = ParseDate(DateProperty(want).Date)
	assert.Assert(t, ok)
	assert.Assert(t, got.Equal(want), "got %v, want %v", got, want)

	_, ok = ParseDate(nil)
	assert.Assert(t, !ok)
}

func TestDatabaseAPI_ListPages_DataSource(t *testing.T) {
	var queries int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /databases/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"object":"database","id":"db-1","data_sources":[{"id":"ds-1","name":"Blinks"}]}`)
	})
	mux.HandleFunc("POST /data_sources/{id}/query", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.PathValue("id"), "ds-1")
		var req queryRequest
		assert.NilError(t, json.NewDecoder(r.Body).Decode(&req))
		queries++

		if req.StartCursor == "" {
			writeJSON(w, `{"object":"list","results":[
				{"object":"page","id":"p1","properties":{"Title":{"type":"title","title":[{"plain_text":"One"}]}}},
				{"object":"page","id":"stub"}
			],"has_more":true,"next_cursor":"c2"}`)
			return
		}
		assert.Equal(t, req.StartCursor, "c2")
		writeJSON(w, `{"object":"list","results":[
			{"object":"page","id":"p2","properties":{}}
		],"has_more":false,"next_cursor":null}`)
	})

	api, err := NewDatabaseAPI(newTestClient(t, mux), testDatabaseID, nil)
	assert.NilError(t, err)

	pages, err := api.ListPages(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, queries, 2)
	assert.Equal(t, len(pages), 2)
	assert.Equal(t, pages[0].ID, "p1")
	assert.Equal(t, PlainText(pages[0].Properties["Title"].Title), "One")
	assert.Equal(t, pages[1].ID, "p2")
}

func TestDatabaseAPI_ListPages_SearchFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /databases/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"object":"database","id":"db-1"}`)
	})
	mux.HandleFunc("POST /search", func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		assert.NilError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, req.Filter.Value, "page")
		writeJSON(w, `{"object":"list","results":[
			{"object":"page","id":"mine","parent":{"type":"database_id","database_id":"DB1"},"properties":{}},
			{"object":"page","id":"other","parent":{"type":"database_id","database_id":"db-2"},"properties":{}},
			{"object":"page","id":"child","parent":{"type":"page_id","page_id":"db-1"},"properties":{}}
		],"has_more":false}`)
	})

	api, err := NewDatabaseAPI(newTestClient(t, mux), testDatabaseID, nil)
	assert.NilError(t, err)

	pages, err := api.ListPages(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, len(pages), 1)
	assert.Equal(t, pages[0].ID, "mine")
}

func TestDatabaseAPI_Mutations(t *testing.T) {
	var created map[string]any
	var patched map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("GET /databases/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"object":"database","id":"db-1","data_sources":[{"id":"ds-1"}]}`)
	})
	mux.HandleFunc("POST /pages", func(w http.ResponseWriter, r *http.Request) {
		assert.NilError(t, json.NewDecoder(r.Body).Decode(&created))
		writeJSON(w, `{"object":"page","id":"new","properties":{}}`)
	})
	mux.HandleFunc("PATCH /pages/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.PathValue("id"), "p1")
		assert.NilError(t, json.NewDecoder(r.Body).Decode(&patched))
		writeJSON(w, `{"object":"page","id":"p1","archived":true,"properties":{}}`)
	})

	api, err := NewDatabaseAPI(newTestClient(t, mux), testDatabaseID, nil)
	assert.NilError(t, err)
	ctx := context.Background()

	page, err := api.CreatePage(ctx, map[string]PropertyValue{"Title": TitleProperty("Hello")})
	assert.NilError(t, err)
	assert.Equal(t, page.ID, "new")
	parent := created["parent"].(map[string]any)
	assert.Equal(t, parent["type"], "data_source_id")
	assert.Equal(t, parent["data_source_id"], "ds-1")

	assert.NilError(t, api.ArchivePage(ctx, "p1"))
	assert.Equal(t, patched["archived"], true)
	_, hasProps := patched["properties"]
	assert.Assert(t, !hasProps)
}

func TestNewDatabaseAPI_NoDatabase(t *testing.T) {
	c, err := NewClient(ClientParams{Token: "t"})
	assert.NilError(t, err)
	_, err = NewDatabaseAPI(c, "", nil)
	assert.Assert(t, errors.Is(err, ErrNoDatabase))
}
