package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/blink/internal/ai"
	"github.com/nikbrunner/blink/internal/config"
)

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-02", time.Date(2025, 3, 2, 9, 0, 0, 0, loc)},
		{"2025-03-02 14:30", time.Date(2025, 3, 2, 14, 30, 0, 0, loc)},
		{"2025-03-02T14:30", time.Date(2025, 3, 2, 14, 30, 0, 0, loc)},
		{"2025-03-02T14:30:00Z", time.Date(2025, 3, 2, 14, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in, loc)
			assert.NilError(t, err)
			assert.Assert(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}

	_, err := parseDate("tomorrow", loc)
	assert.ErrorContains(t, err, "invalid date")
}

func TestNewModel(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		cfg      config.AIConfig
		wantType string
		wantErr  string
	}{
		{"no keys", config.AIConfig{}, "<nil>", ""},
		{"anthropic key", config.AIConfig{AnthropicAPIKey: "a"}, "*ai.Client", ""},
		{"google key", config.AIConfig{GoogleAPIKey: "g"}, "*ai.GeminiClient", ""},
		{"anthropic first", config.AIConfig{AnthropicAPIKey: "a", GoogleAPIKey: "g"}, "*ai.Client", ""},
		{"explicit gemini", config.AIConfig{Provider: "Gemini", AnthropicAPIKey: "a", GoogleAPIKey: "g"}, "*ai.GeminiClient", ""},
		{"explicit without key", config.AIConfig{Provider: "anthropic"}, "<nil>", ""},
		{"none", config.AIConfig{Provider: "none", AnthropicAPIKey: "a"}, "<nil>", ""},
		{"unknown", config.AIConfig{Provider: "llama"}, "<nil>", `unknown AI provider "llama"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := newModel(ctx, tt.cfg)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, fmt.Sprintf("%T", m), tt.wantType)
			// A missing model must be a nil interface, or the processor
			// would try to use it.
			assert.Equal(t, ai.CheckAccess(m) == nil, m != nil)
		})
	}
}

func TestCommandError(t *testing.T) {
	base := errors.New("offline")
	err := fail("Error loading Blinks", base)

	assert.Assert(t, errors.Is(err, base))
	assert.Equal(t, err.Error(), "Error loading Blinks: offline")

	var ce *commandError
	assert.Assert(t, errors.As(err, &ce))
	assert.Equal(t, ce.title, "Error loading Blinks")
}

func TestCaptureError(t *testing.T) {
	var ce *commandError

	assert.Assert(t, errors.As(captureError(ai.ErrUpgradeRequired), &ce))
	assert.Equal(t, ce.title, "Upgrade required")

	assert.Assert(t, errors.As(captureError(errors.New("boom")), &ce))
	assert.Equal(t, ce.title, "Failed to capture Blink")
}
