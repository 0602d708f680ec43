package ai

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestParseJSON(t *testing.T) {
	var out struct {
		Title string `json:"title"`
	}

	err := ParseJSON("```json\n{\"title\": \"Hello\"}\n```", []string{"title"}, &out)
	assert.NilError(t, err)
	assert.Equal(t, out.Title, "Hello")

	err = ParseJSON(`{"summary": "x"}`, []string{"title"}, &out)
	assert.Assert(t, errors.Is(err, ErrMissingFields))

	err = ParseJSON("not json", []string{"title"}, &out)
	assert.Assert(t, errors.Is(err, ErrMalformedResponse))
}

func TestParseJSON_NullCountsAsPresent(t *testing.T) {
	var out quoteCleaning
	err := ParseJSON(`{"cleanedQuote": "hi", "attributedAuthor": null}`, []string{"cleanedQuote", "attributedAuthor"}, &out)
	assert.NilError(t, err)
	assert.Assert(t, out.AttributedAuthor == nil)
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello   world ", "Hello world"},
		{`"quoted title"`, "Quoted title"},
		{"“curly”", "Curly"},
		{"Already fine", "Already fine"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, Clean(tt.in), tt.want, "input %q", tt.in)
	}
}

func TestClampRunes(t *testing.T) {
	assert.Equal(t, ClampRunes("short", 40), "short")
	assert.Equal(t, ClampRunes("Call the insurance company about the broken windshield", 40),
		"Call the insurance company about the")
	assert.Equal(t, ClampRunes("abcdefghijklmnop", 5), "abcde")
	assert.Equal(t, ClampRunes("über straße", 4), "über")
}
