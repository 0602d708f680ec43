package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/blink/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into bookmark Blinks.
// The folder a bookmark was filed under is kept in its description.
// Entries without ADD_DATE get now as their creation time.
func ParseHTMLBookmarks(r io.Reader, now time.Time) ([]model.Blink, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var blinks []model.Blink

	var folderStack []string // folder names, root first
	var pendingFolder string // folder waiting to be pushed on the next DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// The H3 names the DL that follows it.
				pendingFolder = getTextContent(n)
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				b := model.NewBlink(model.NewBlinkParams{
					Type:        model.TypeBookmark,
					Title:       title,
					Source:      href,
					Description: folderDescription(folderStack),
				})
				b.CreatedOn = now
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						b.CreatedOn = time.Unix(ts, 0)
					}
				}
				blinks = append(blinks, b)
				return

			case "dl":
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return blinks, nil
}

func folderDescription(stack []string) string {
	if len(stack) == 0 {
		return ""
	}
	return "Imported from " + strings.Join(stack, " / ")
}

// getTextContent returns the trimmed text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
