package webpage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// maxBody bounds how much of a page is read while looking for <title>.
const maxBody = 1 << 20

var ErrNoTitle = errors.New("page has no title")

// Fetcher resolves page titles over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher. A nil client gets a 10 second timeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{client: client}
}

// Title fetches rawURL and returns the text of its <title> element.
func (f *Fetcher) Title(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "blink/1.0 (+title lookup)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: %s", rawURL, resp.Status)
	}

	return ParseTitle(io.LimitReader(resp.Body, maxBody))
}

// ParseTitle returns the first <title> text in an HTML document.
func ParseTitle(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return "", ErrNoTitle
			}
			return "", z.Err()

		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) != "title" {
				continue
			}
			if z.Next() != html.TextToken {
				return "", ErrNoTitle
			}
			title := strings.Join(strings.Fields(string(z.Text())), " ")
			if title == "" {
				return "", ErrNoTitle
			}
			return title, nil
		}
	}
}
