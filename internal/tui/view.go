package tui

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/blink/internal/design"
	"github.com/nikbrunner/blink/internal/model"
	"github.com/nikbrunner/blink/internal/tui/layout"
)

// renderView creates the complete list view.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeConfirmDelete, ModeEditTitle:
		return a.renderModal()
	}

	listHeight := layout.CalculateListHeight(a.height, a.layoutConfig.List)
	split := layout.CalculateSplit(a.width, a.mode == ModeDetail, a.layoutConfig.List)

	var panes []string
	if split.ListWidth > 0 {
		panes = append(panes, a.renderListPane(split.ListWidth, listHeight))
	}
	if split.DetailWidth > 0 {
		panes = append(panes, a.renderDetailPane(split.DetailWidth, listHeight))
	}

	return a.styles.App.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		a.renderHelpBar(),
	))
}

// renderHeader renders the title line with counts, sort and filter state.
func (a App) renderHeader() string {
	count := 0
	for _, row := range a.list.Rows {
		if row.IsBlink() {
			count++
		}
	}

	status := fmt.Sprintf("%d of %d", count, len(a.list.Blinks))
	if a.list.Loading {
		status = "loading..."
	}
	status += fmt.Sprintf("  [sort:%s]", a.list.Sort)
	if !a.list.Sections {
		status += "  [flat]"
	}

	header := a.styles.Title.Render("Blinks") + "  " + a.styles.Status.Render(status)

	switch {
	case a.mode == ModeFilter:
		header += "\n" + a.filter.Input.View()
	case a.filter.Query != "":
		header += "\n" + a.styles.Status.Render("filter: "+a.filter.Query)
	default:
		header += "\n"
	}
	return header
}

// renderListPane renders the rows that fit into the pane.
func (a App) renderListPane(width, height int) string {
	style := a.styles.PaneActive
	if a.mode == ModeDetail {
		style = a.styles.Pane
	}
	contentWidth := layout.ContentWidth(width, a.layoutConfig.List)

	var lines []string
	switch {
	case a.list.Loading:
		lines = append(lines, a.styles.Empty.Render("Loading..."))
	case len(a.list.Blinks) == 0:
		lines = append(lines,
			a.styles.Empty.Render("No Blinks Yet"),
			a.styles.Empty.Render("Capture one with: blink capture <text>"))
	case len(a.list.Rows) == 0:
		lines = append(lines, a.styles.Empty.Render("No matches"))
	default:
		offset := layout.CalculateViewportOffset(a.list.Cursor, len(a.list.Rows), height)
		end := offset + height
		if end > len(a.list.Rows) {
			end = len(a.list.Rows)
		}
		for i := offset; i < end; i++ {
			lines = append(lines, a.renderRow(a.list.Rows[i], i == a.list.Cursor, contentWidth))
		}
	}

	return style.Width(contentWidth).Height(height).Render(strings.Join(lines, "\n"))
}

// renderRow renders one list row.
func (a App) renderRow(row Row, selected bool, maxWidth int) string {
	if row.Kind == RowSection {
		title := fmt.Sprintf("%s (%d)", design.Title(row.Type), row.Count)
		return a.styles.Section.Foreground(design.Color(row.Type)).Render(title)
	}

	b := row.Blink
	icon := design.Icon(b.Type)
	if b.IsReminder() {
		icon = design.IconOpen
		if b.IsCompleted {
			icon = design.IconCompleted
		}
	}

	accessory := a.accessory(*b)
	titleWidth := maxWidth - 1 // item padding
	if accessory != "" {
		titleWidth -= lipgloss.Width(accessory) + 2
	}
	text := layout.Row(icon, b.Title, titleWidth, a.layoutConfig.Text)

	if selected {
		line := text
		if accessory != "" {
			line += "  " + accessory
		}
		return a.styles.ItemSelected.Render(line)
	}

	style := a.styles.Item
	if b.IsCompleted {
		style = a.styles.Completed.PaddingLeft(1)
	}
	line := style.Render(text)
	if accessory != "" {
		line += "  " + a.styles.Accessory.Render(accessory)
	}
	return line
}

// accessory is the short trailing text of a row.
func (a App) accessory(b model.Blink) string {
	switch {
	case b.ReminderDate != nil:
		return formatDate(*b.ReminderDate, a.now())
	case b.Author != "":
		return b.Author
	case b.Source != "":
		return hostOf(b.Source)
	}
	return ""
}

// renderDetailPane renders all fields of the selected Blink.
func (a App) renderDetailPane(width, height int) string {
	style := a.styles.Pane
	if a.mode == ModeDetail {
		style = a.styles.PaneActive
	}
	contentWidth := layout.ContentWidth(width, a.layoutConfig.List)

	b := a.Selected()
	if b == nil {
		return style.Width(contentWidth).Height(height).Render(a.styles.Empty.Render("Nothing selected"))
	}

	title := lipgloss.NewStyle().Bold(true).Width(contentWidth).Render(b.Title)
	lines := []string{title, ""}

	field := func(label, value string) {
		if value == "" {
			return
		}
		valueWidth := contentWidth - a.styles.Label.GetWidth()
		if valueWidth < 1 {
			valueWidth = 1
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			a.styles.Label.Render(label),
			a.styles.Value.Width(valueWidth).Render(value),
		))
	}

	typeName := lipgloss.NewStyle().Foreground(design.IconColor(b.Type)).Render(design.Icon(b.Type)) + " " + b.Type.Display()
	field("Type", typeName)
	field("Created", formatDate(b.CreatedOn, a.now())+" ("+formatTimeAgo(b.CreatedOn, a.now())+")")
	if b.ReminderDate != nil {
		field("Due", b.ReminderDate.Local().Format("Mon Jan 2, 2006 15:04"))
	}
	if b.IsReminder() {
		status := "Open"
		if b.IsCompleted {
			status = "Done"
			if b.CompletedAt != nil {
				status += " " + formatTimeAgo(*b.CompletedAt, a.now())
			}
		}
		field("Status", status)
	}
	field("Author", b.Author)
	field("Source", b.Source)
	field("Description", b.Description)

	return style.Width(contentWidth).Height(height).Render(strings.Join(lines, "\n"))
}

// renderModal renders the delete confirmation or the title editor.
func (a App) renderModal() string {
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal)

	var content strings.Builder
	switch a.mode {
	case ModeConfirmDelete:
		content.WriteString(a.styles.Title.Render("Delete Blink?") + "\n\n")
		if a.modal.Target != nil {
			text := layout.Truncate(a.modal.Target.Title, modalWidth-6, a.layoutConfig.Text)
			content.WriteString(text + "\n\n")
		}
		content.WriteString(a.renderHintsInline([]Hint{{Key: "y", Desc: "delete"}, {Key: "n", Desc: "cancel"}}))

	case ModeEditTitle:
		content.WriteString(a.styles.Title.Render("Edit title") + "\n\n")
		content.WriteString(a.modal.TitleInput.View() + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{{Key: "Enter", Desc: "save"}, {Key: "Esc", Desc: "cancel"}}))
	}

	modal := a.styles.Modal.Width(modalWidth).Render(content.String())
	placed := lipgloss.Place(a.width, a.height-3, lipgloss.Center, lipgloss.Center, modal)
	return lipgloss.JoinVertical(lipgloss.Left, placed, a.renderHelpBar())
}

// renderHelpBar renders the message line and the contextual hints.
func (a App) renderHelpBar() string {
	lines := []string{""}
	if a.messageText != "" {
		lines[0] = a.renderMessageLine()
	}
	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}
	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderHelpOverlay renders the key reference.
func (a App) renderHelpOverlay() string {
	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k    move\n")
	left.WriteString("gg     top\n")
	left.WriteString("G      bottom\n")
	left.WriteString("enter  details\n")
	left.WriteString("esc    back\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("view") + "\n")
	left.WriteString("/      filter\n")
	left.WriteString("o      sort mode\n")
	left.WriteString("s      sections\n")
	left.WriteString("r      reload\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("act") + "\n")
	right.WriteString("x      toggle done\n")
	right.WriteString("e      edit title\n")
	right.WriteString("d      delete\n")
	right.WriteString("y      copy title\n")
	right.WriteString("Y      copy source\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Status.Render("[any key] close  [q] quit"))

	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(20).Render(left.String()),
		"  ",
		lipgloss.NewStyle().Width(22).Render(right.String()),
	)

	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(cols))
}

// formatDate renders a date, with the year only when it differs from now.
func formatDate(t, now time.Time) string {
	t = t.In(now.Location())
	if t.Year() == now.Year() {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2, 2006")
}

func formatTimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	} else if d < time.Hour {
		m := int(d.Minutes())
		if m == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", m)
	} else if d < 24*time.Hour {
		h := int(d.Hours())
		if h == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", h)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1d ago"
	}
	return fmt.Sprintf("%dd ago", days)
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Host, "www.")
}
