package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Notifier shows short user-facing status messages.
type Notifier interface {
	Success(title, message string)
	Failure(title, message string)
	// Loading shows a transient indicator. The returned func clears it.
	Loading(title string) func()
}

// Terminal writes notifications as single styled lines.
type Terminal struct {
	out io.Writer
	err io.Writer

	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	mutedStyle   lipgloss.Style
}

// NewTerminal creates a Terminal notifier. Nil writers default to
// stdout and stderr.
func NewTerminal(out, errOut io.Writer) *Terminal {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	danger := lipgloss.AdaptiveColor{Light: "#A03030", Dark: "#D75F5F"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}

	return &Terminal{
		out:          out,
		err:          errOut,
		successStyle: lipgloss.NewStyle().Bold(true).Foreground(accent),
		failureStyle: lipgloss.NewStyle().Bold(true).Foreground(danger),
		mutedStyle:   lipgloss.NewStyle().Foreground(subtle),
	}
}

func (t *Terminal) Success(title, message string) {
	fmt.Fprintln(t.out, line(t.successStyle, t.mutedStyle, title, message))
}

func (t *Terminal) Failure(title, message string) {
	fmt.Fprintln(t.err, line(t.failureStyle, t.mutedStyle, title+":", message))
}

// Loading prints the title to stderr and erases it when done.
func (t *Terminal) Loading(title string) func() {
	fmt.Fprint(t.err, t.mutedStyle.Render(title+"..."))
	return func() {
		fmt.Fprint(t.err, "\r\033[K")
	}
}

func line(head, body lipgloss.Style, title, message string) string {
	if message == "" {
		return head.Render(title)
	}
	return head.Render(title) + " " + body.Render(message)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Success(string, string) {}
func (Nop) Failure(string, string) {}
func (Nop) Loading(string) func()  { return func() {} }

// Recorder keeps notifications in memory.
type Recorder struct {
	Successes []string
	Failures  []string
}

func (r *Recorder) Success(title, message string) {
	r.Successes = append(r.Successes, join(title, message))
}

func (r *Recorder) Failure(title, message string) {
	r.Failures = append(r.Failures, join(title, message))
}

func (r *Recorder) Loading(string) func() { return func() {} }

func join(title, message string) string {
	if message == "" {
		return title
	}
	return title + ": " + message
}
