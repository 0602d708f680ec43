package browser

import (
	"context"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
)

// Tab is the page the user is looking at.
type Tab struct {
	URL   string
	Title string
}

// Context provides the active tab when one is available. Absence is
// never an error.
type Context interface {
	ActiveTab(ctx context.Context) (Tab, bool)
}

// ClipboardContext treats a URL on the system clipboard as the active tab.
type ClipboardContext struct {
	read func() (string, error)
}

// NewClipboardContext reads the system clipboard.
func NewClipboardContext() *ClipboardContext {
	return &ClipboardContext{read: clipboard.ReadAll}
}

func (c *ClipboardContext) ActiveTab(_ context.Context) (Tab, bool) {
	text, err := c.read()
	if err != nil {
		return Tab{}, false
	}
	u, ok := ParseURL(text)
	if !ok {
		return Tab{}, false
	}
	return Tab{URL: u}, true
}

// StaticContext always returns the same tab. An empty URL means no tab.
type StaticContext struct {
	Tab Tab
}

func (s StaticContext) ActiveTab(context.Context) (Tab, bool) {
	return s.Tab, s.Tab.URL != ""
}

// ParseURL accepts a single absolute http(s) URL.
func ParseURL(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, " \t\n") {
		return "", false
	}
	u, err := url.Parse(text)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return u.String(), true
}
