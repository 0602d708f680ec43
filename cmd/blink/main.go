package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/blink/internal/ai"
	"github.com/nikbrunner/blink/internal/capture"
	"github.com/nikbrunner/blink/internal/culler"
	"github.com/nikbrunner/blink/internal/exporter"
	"github.com/nikbrunner/blink/internal/importer"
	"github.com/nikbrunner/blink/internal/logger"
	"github.com/nikbrunner/blink/internal/model"
	"github.com/nikbrunner/blink/internal/notify"
	"github.com/nikbrunner/blink/internal/picker"
	"github.com/nikbrunner/blink/internal/search"
	"github.com/nikbrunner/blink/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	notifier := notify.NewTerminal(nil, nil)
	if err := run(ctx, os.Args[1:], notifier); err != nil {
		title, msg := "Error", err.Error()
		var ce *commandError
		if errors.As(err, &ce) {
			title, msg = ce.title, ce.err.Error()
		}
		notifier.Failure(title, msg)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, notifier notify.Notifier) error {
	cmd := "list"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "help", "--help", "-h":
		printHelp(os.Stdout)
		return nil
	}

	e, err := newEnv(notifier)
	if err != nil {
		return err
	}
	defer e.close()

	switch cmd {
	case "list":
		return runList(ctx, e)
	case "capture":
		return runCapture(ctx, e, args)
	case "add":
		return runAdd(ctx, e, args)
	case "edit":
		return runEdit(ctx, e, args)
	case "done":
		return runDone(ctx, e, args)
	case "rm":
		return runRemove(ctx, e, args)
	case "cleanup":
		return runCleanup(ctx, e, args)
	case "find":
		return runFind(ctx, e, args)
	case "check":
		return runCheck(ctx, e)
	case "import":
		return runImport(ctx, e, args)
	case "export":
		return runExport(ctx, e, args)
	}

	printHelp(os.Stderr)
	return fail("Unknown command", errors.New(cmd))
}

func printHelp(w io.Writer) {
	help := `blink - quick capture for thoughts, reminders, bookmarks and quotes

Usage:
  blink                        Open the list (runs the cleanup sweep first)
  blink list                   Same as above
  blink capture <text>         Quick capture; prefix /r, /b or /q for
                               reminder, bookmark or quote (or r/, b/, q/)
  blink add [flags] <text>     Capture with explicit fields
      -type T                  thought | reminder | bookmark | quote
      -date D                  reminder date, YYYY-MM-DD [HH:MM]
      -source URL              source URL
      -tab                     use the URL on the clipboard as source
      -raw                     save the text as typed, without AI
  blink edit <id> [flags]      Edit a Blink (-type -title -description
                               -author -source -date)
  blink done <id>              Toggle completion of a reminder
  blink rm <id>                Delete a Blink
  blink cleanup [-force]       Delete completed reminders past their cutoff
  blink find <query>           Fuzzy search, copy the chosen Blink
  blink check                  Check source URLs for dead links
  blink import <file.html>     Import browser bookmarks
  blink export [path]          Export all Blinks to HTML
  blink help                   Show this help

List Keybindings:
  j/k  gg/G   Move, jump to top/bottom
  Enter/Esc   Open/close details
  /           Fuzzy filter
  o           Toggle sort (newest/title)
  s           Toggle sections
  x           Toggle reminder completion
  e           Edit title
  d           Delete
  y/Y         Copy title/source
  ?           Help overlay
  q           Quit

Configuration:
  ~/.config/blink/config.toml
  NOTION_API_TOKEN, NOTION_DATABASE_ID, ANTHROPIC_API_KEY, GOOGLE_API_KEY,
  BLINK_BACKEND, BLINK_LOG_LEVEL override the file.
`
	fmt.Fprint(w, help)
}

// runList sweeps old reminders and opens the TUI.
func runList(ctx context.Context, e *env) error {
	if ran, deleted, err := e.sweeper().MaybeSweep(ctx); err != nil {
		e.log.Warn("cleanup failed", logger.Error(err))
	} else if ran {
		e.log.Info("cleanup ran", logger.Int("deleted", deleted))
	}

	svc, err := e.service(ctx)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.AppParams{Store: e.store, Editor: svc})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fail("Error running app", err)
	}
	return nil
}

// captureError titles a capture failure.
func captureError(err error) error {
	if errors.Is(err, ai.ErrUpgradeRequired) {
		return fail("Upgrade required", err)
	}
	return fail("Failed to capture Blink", err)
}

func runCapture(ctx context.Context, e *env, args []string) error {
	svc, err := e.service(ctx)
	if err != nil {
		return err
	}
	if _, err := svc.Quick(ctx, strings.Join(args, " ")); err != nil {
		return captureError(err)
	}
	return nil
}

func runAdd(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	typeFlag := fs.String("type", string(model.TypeThought), "thought | reminder | bookmark | quote")
	dateFlag := fs.String("date", "", "reminder date, YYYY-MM-DD [HH:MM]")
	source := fs.String("source", "", "source URL")
	tab := fs.Bool("tab", false, "use the URL on the clipboard as source")
	raw := fs.Bool("raw", false, "save the text as typed")
	if err := fs.Parse(args); err != nil {
		return fail("Invalid arguments", err)
	}

	typ, err := model.ParseType(*typeFlag)
	if err != nil {
		return fail("Invalid type", err)
	}
	form := capture.Form{
		Type:          typ,
		Title:         strings.Join(fs.Args(), " "),
		Source:        *source,
		UseBrowserTab: *tab,
		Raw:           *raw,
	}
	if *dateFlag != "" {
		date, err := parseDate(*dateFlag, time.Local)
		if err != nil {
			return fail("Invalid date", err)
		}
		form.ReminderDate = &date
	}

	svc, err := e.service(ctx)
	if err != nil {
		return err
	}
	if _, err := svc.Capture(ctx, form); err != nil {
		return captureError(err)
	}
	return nil
}

func runEdit(ctx context.Context, e *env, args []string) error {
	if len(args) == 0 {
		return fail("Usage", errors.New("blink edit <id> [flags]"))
	}
	id, args := args[0], args[1:]

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	typeFlag := fs.String("type", "", "new type")
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	author := fs.String("author", "", "new author")
	source := fs.String("source", "", "new source URL")
	dateFlag := fs.String("date", "", "new reminder date")
	if err := fs.Parse(args); err != nil {
		return fail("Invalid arguments", err)
	}

	blinks, err := e.store.List(ctx)
	if err != nil {
		return fail("Error loading Blinks", err)
	}
	b := model.FindByID(blinks, id)
	if b == nil {
		return fail("Blink not found", errors.New(id))
	}

	form := capture.FormFor(*b)
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "type":
			typ, err := model.ParseType(*typeFlag)
			if err != nil {
				parseErr = err
				return
			}
			form.Type = typ
		case "title":
			form.Title = *title
		case "description":
			form.Description = *description
		case "author":
			form.Author = *author
		case "source":
			form.Source = *source
		case "date":
			date, err := parseDate(*dateFlag, time.Local)
			if err != nil {
				parseErr = err
				return
			}
			form.ReminderDate = &date
		}
	})
	if parseErr != nil {
		return fail("Invalid arguments", parseErr)
	}

	svc, err := e.service(ctx)
	if err != nil {
		return err
	}
	if _, err := svc.Edit(ctx, id, form); err != nil {
		return fail("Failed to update Blink", err)
	}
	return nil
}

func runDone(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return fail("Usage", errors.New("blink done <id>"))
	}
	if err := e.store.ToggleCompletion(ctx, args[0]); err != nil {
		return fail("Error updating reminder", err)
	}
	e.notifier.Success("Reminder updated", "")
	return nil
}

func runRemove(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return fail("Usage", errors.New("blink rm <id>"))
	}
	if err := e.store.Delete(ctx, args[0]); err != nil {
		return fail("Error deleting Blink", err)
	}
	e.notifier.Success("Blink deleted", "")
	return nil
}

func runCleanup(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("cleanup", flag.ContinueOnError)
	force := fs.Bool("force", false, "ignore the rate limit")
	if err := fs.Parse(args); err != nil {
		return fail("Invalid arguments", err)
	}

	sweeper := e.sweeper()
	var (
		ran     = true
		deleted int
		err     error
	)
	if *force {
		deleted, err = sweeper.Sweep(ctx, time.Now())
	} else {
		ran, deleted, err = sweeper.MaybeSweep(ctx)
	}
	if err != nil {
		return fail("Cleanup failed", err)
	}

	if !ran {
		e.notifier.Success("Cleanup skipped", "ran within the last "+e.cfg.CleanupInterval().String())
		return nil
	}
	e.notifier.Success(fmt.Sprintf("Cleaned up %d reminders", deleted), "")
	return nil
}

// runFind searches titles, lets the user pick one and copies it.
func runFind(ctx context.Context, e *env, args []string) error {
	query := strings.Join(args, " ")
	blinks, err := e.store.List(ctx)
	if err != nil {
		return fail("Error loading Blinks", err)
	}

	results := search.FuzzySearch(blinks, query)
	if len(results) == 0 {
		fmt.Printf("No Blinks found for '%s'\n", query)
		return nil
	}

	var selected *model.Blink
	if len(results) == 1 {
		selected = results[0].Blink
	} else {
		program := tea.NewProgram(picker.New(results, query), tea.WithContext(ctx))
		finalModel, err := program.Run()
		if err != nil {
			return fail("Error running picker", err)
		}
		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return nil
		}
		selected = finalPicker.Selected()
	}
	if selected == nil {
		return nil
	}

	fmt.Printf("%s  %s\n", selected.ID, selected.Title)
	text := selected.Title
	if selected.Source != "" {
		fmt.Println(selected.Source)
		text = selected.Source
	}
	if err := clipboard.WriteAll(text); err != nil {
		e.log.Warn("clipboard write failed", logger.Error(err))
		return nil
	}
	e.notifier.Success("Copied to clipboard", "")
	return nil
}

func runCheck(ctx context.Context, e *env) error {
	blinks, err := e.store.List(ctx)
	if err != nil {
		return fail("Error loading Blinks", err)
	}
	withSource := culler.WithSource(blinks)
	if len(withSource) == 0 {
		fmt.Println("No Blinks with a source to check")
		return nil
	}

	results := culler.Check(ctx, withSource, culler.Options{
		Concurrency:    10,
		Timeout:        10 * time.Second,
		ExcludeDomains: e.cfg.Check.ExcludeDomains,
		OnProgress: func(completed, total int) {
			fmt.Fprintf(os.Stderr, "\rChecking %d/%d", completed, total)
		},
	})
	fmt.Fprint(os.Stderr, "\r\033[K")

	var healthy int
	for _, r := range results {
		switch r.Status {
		case culler.Healthy:
			healthy++
		case culler.Dead:
			fmt.Printf("dead         %s  %s (%d)\n", r.Blink.ID, r.Blink.Source, r.StatusCode)
		case culler.Unreachable:
			fmt.Printf("unreachable  %s  %s (%s)\n", r.Blink.ID, r.Blink.Source, r.Error)
		}
	}
	e.notifier.Success(fmt.Sprintf("%d of %d sources healthy", healthy, len(results)), "")
	return nil
}

func runImport(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return fail("Usage", errors.New("blink import <file.html>"))
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fail("Error opening file", err)
	}
	defer file.Close()

	imported, err := importer.ParseHTMLBookmarks(file, time.Now())
	if err != nil {
		return fail("Error parsing HTML", err)
	}

	existing, err := e.store.List(ctx)
	if err != nil {
		return fail("Error loading Blinks", err)
	}
	added, skipped := importer.Merge(existing, imported)

	for i, b := range added {
		if _, err := e.store.Create(ctx, b); err != nil {
			return fail("Error saving Blinks", fmt.Errorf("imported %d of %d: %w", i, len(added), err))
		}
	}

	msg := ""
	if skipped > 0 {
		msg = fmt.Sprintf("%d duplicates skipped", skipped)
	}
	e.notifier.Success(fmt.Sprintf("Imported %d bookmarks", len(added)), msg)
	return nil
}

func runExport(ctx context.Context, e *env, args []string) error {
	var outputPath string
	if len(args) > 0 {
		outputPath = args[0]
	} else {
		var err error
		outputPath, err = exporter.DefaultExportPath(time.Now())
		if err != nil {
			return fail("Error getting default export path", err)
		}
	}

	blinks, err := e.store.List(ctx)
	if err != nil {
		return fail("Error loading Blinks", err)
	}

	if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(blinks)), 0644); err != nil {
		return fail("Error writing file", err)
	}
	e.notifier.Success(fmt.Sprintf("Exported %d Blinks", len(blinks)), "to "+outputPath)
	return nil
}
