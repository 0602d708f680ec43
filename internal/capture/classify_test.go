package capture

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/blink/internal/model"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType model.Type
		wantText string
	}{
		{"plain text is a thought", "Buy milk", model.TypeThought, "Buy milk"},
		{"leading reminder marker", "/r call mom", model.TypeReminder, "call mom"},
		{"trailing slash reminder marker", "r/ call mom", model.TypeReminder, "call mom"},
		{"trailing reminder marker", "call mom /r ", model.TypeReminder, "call mom"},
		{"bookmark marker", "/b https://go.dev", model.TypeBookmark, "https://go.dev"},
		{"bookmark marker without space", "b/go.dev", model.TypeBookmark, "go.dev"},
		{"quote marker", "/q Be yourself - Oscar Wilde", model.TypeQuote, "Be yourself - Oscar Wilde"},
		{"marker needs trailing space", "/remember", model.TypeThought, "/remember"},
		{"reminder wins over quote", "/q /r call mom", model.TypeReminder, "/q  call mom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, text := DetectType(tt.input)
			assert.Equal(t, typ, tt.wantType)
			assert.Equal(t, text, tt.wantText)
		})
	}
}

func TestRemovePrefix(t *testing.T) {
	assert.Equal(t, RemovePrefix("  /r call /r mom ", "/r"), "call /r mom")
	assert.Equal(t, RemovePrefix("nothing", "/q"), "nothing")
}
