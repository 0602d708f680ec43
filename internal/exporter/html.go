package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/blink/internal/design"
	"github.com/nikbrunner/blink/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/blinks-export-YYYY-MM-DD.html
func DefaultExportPath(now time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("blinks-export-%s.html", now.Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders Blinks as Netscape bookmark HTML with one folder per
// type. Blinks with a source become links; descriptions, authors and
// reminder details go into DD elements.
func ExportHTML(blinks []model.Blink) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Blinks</TITLE>\n")
	b.WriteString("<H1>Blinks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, section := range model.GroupByType(model.Sort(blinks, model.SortNewest), model.SortNewest) {
		fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(design.Title(section.Type)))
		b.WriteString("    <DL><p>\n")
		for _, blink := range section.Blinks {
			writeBlink(&b, blink, "        ")
		}
		b.WriteString("    </DL><p>\n")
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeBlink(b *strings.Builder, blink model.Blink, prefix string) {
	href := ""
	if blink.Source != "" {
		href = fmt.Sprintf(" HREF=\"%s\"", html.EscapeString(blink.Source))
	}
	fmt.Fprintf(b,
		"%s<DT><A%s ADD_DATE=\"%d\">%s</A>\n",
		prefix,
		href,
		blink.CreatedOn.Unix(),
		html.EscapeString(blink.Title),
	)

	if details := detailText(blink); details != "" {
		fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(details))
	}
}

func detailText(blink model.Blink) string {
	var parts []string
	if blink.Author != "" {
		parts = append(parts, "— "+blink.Author)
	}
	if blink.ReminderDate != nil {
		parts = append(parts, "Due "+blink.ReminderDate.Format("2006-01-02 15:04"))
	}
	if blink.IsCompleted {
		parts = append(parts, "Completed")
	}
	if blink.Description != "" {
		parts = append(parts, blink.Description)
	}
	return strings.Join(parts, ". ")
}
