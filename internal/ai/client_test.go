package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/v3/assert"
)

func TestNewClient_NoKey(t *testing.T) {
	_, err := NewClient(ClientParams{})
	assert.Assert(t, errors.Is(err, ErrNoAPIKey))
}

func TestClient_Ask(t *testing.T) {
	var got apiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Header.Get("x-api-key"), "secret")
		assert.Equal(t, r.Header.Get("anthropic-version"), apiVersion)
		assert.NilError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Hello "},{"type":"text","text":"there"}],"stop_reason":"end_turn"}`))
	}))
	defer srv.Close()

	c, err := NewClient(ClientParams{APIKey: "secret", URL: srv.URL})
	assert.NilError(t, err)

	text, err := c.Ask(context.Background(), "hi", AskOptions{Creativity: CreativityLow})
	assert.NilError(t, err)
	assert.Equal(t, text, "Hello there")
	assert.Equal(t, got.Model, DefaultHaikuModel)
	assert.Equal(t, got.MaxTokens, defaultMaxTokens)
	assert.Equal(t, got.Temperature, float32(0.2))
	assert.Equal(t, got.Messages[0].Content, "hi")
}

func TestClient_AskErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantErr: ErrAPIRequest},
		{name: "no text blocks", status: http.StatusOK, body: `{"content":[]}`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewClient(ClientParams{APIKey: "k", URL: srv.URL})
			assert.NilError(t, err)

			_, err = c.Ask(context.Background(), "hi", AskOptions{})
			assert.Assert(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestClient_AskStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid x-api-key"}`))
	}))
	defer srv.Close()

	c, err := NewClient(ClientParams{APIKey: "k", URL: srv.URL})
	assert.NilError(t, err)

	_, err = c.Ask(context.Background(), "hi", AskOptions{})
	var statusErr *StatusError
	assert.Assert(t, errors.As(err, &statusErr), "got %v", err)
	assert.Equal(t, statusErr.Code, http.StatusUnauthorized)
	assert.ErrorContains(t, err, "status 401")
}
