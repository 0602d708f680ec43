package culler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/blink/internal/model"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/get-only", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func bookmark(id, source string) model.Blink {
	return model.Blink{ID: id, Type: model.TypeBookmark, Title: id, Source: source}
}

func TestCheck(t *testing.T) {
	srv := newServer(t)
	blinks := []model.Blink{
		bookmark("ok", srv.URL+"/ok"),
		bookmark("gone", srv.URL+"/gone"),
		bookmark("broken", srv.URL+"/broken"),
		bookmark("get-only", srv.URL+"/get-only"),
	}

	var progress atomic.Int32
	results := Check(context.Background(), blinks, Options{
		Concurrency: 2,
		Timeout:     5 * time.Second,
		OnProgress:  func(completed, total int) { progress.Add(1) },
	})

	assert.Equal(t, len(results), 4)
	assert.Equal(t, int(progress.Load()), 4)

	want := map[string]Status{"ok": Healthy, "gone": Dead, "broken": Unreachable, "get-only": Healthy}
	for _, r := range results {
		assert.Equal(t, r.Status, want[r.Blink.ID], r.Blink.ID)
	}
	assert.Equal(t, results[2].Error, "Internal Server Error")
}

func TestCheck_ExcludedDomain(t *testing.T) {
	srv := newServer(t)

	results := Check(context.Background(), []model.Blink{bookmark("private", srv.URL+"/gone")}, Options{
		Concurrency:    1,
		ExcludeDomains: []string{"127.0.0.1"},
	})

	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Error, "Possibly private (auth required)")
}

func TestCheck_Empty(t *testing.T) {
	assert.Assert(t, Check(context.Background(), nil, Options{}) == nil)
}

func TestWithSource(t *testing.T) {
	blinks := []model.Blink{
		{ID: "a", Type: model.TypeThought, Title: "a"},
		bookmark("b", "https://go.dev"),
	}
	got := WithSource(blinks)
	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].ID, "b")
}

func TestIsExcludedDomain(t *testing.T) {
	exclude := map[string]bool{"github.com": true}
	tests := []struct {
		url  string
		want bool
	}{
		{"https://github.com/me/private", true},
		{"https://api.github.com/repos", true},
		{"https://notgithub.com", false},
		{"https://gitlab.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, isExcludedDomain(tt.url, exclude), tt.want, tt.url)
	}
}

func TestNormalizeError(t *testing.T) {
	assert.Equal(t, normalizeError("dial tcp: lookup x: no such host"), "DNS failure")
	assert.Equal(t, normalizeError("context deadline exceeded (Client.Timeout exceeded)"), "Timeout")
	assert.Equal(t, normalizeError("weird"), "weird")
}
