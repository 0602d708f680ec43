package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikbrunner/blink/internal/ai"
	"github.com/nikbrunner/blink/internal/browser"
	"github.com/nikbrunner/blink/internal/logger"
	"github.com/nikbrunner/blink/internal/model"
	"github.com/nikbrunner/blink/internal/notify"
	"github.com/nikbrunner/blink/internal/storage"
)

var (
	ErrEmptyInput = errors.New("please enter some text to capture")
	ErrNoURL      = errors.New("no URL found in text and could not get active browser tab")
)

// Titler resolves the title of a web page.
type Titler interface {
	Title(ctx context.Context, url string) (string, error)
}

// Service captures and edits Blinks.
type Service struct {
	store    storage.Storage
	ai       *ai.Processor
	browser  browser.Context
	titles   Titler
	notifier notify.Notifier
	log      logger.Logger
	now      func() time.Time
}

// ServiceParams holds parameters for creating a Service.
type ServiceParams struct {
	Store    storage.Storage
	AI       *ai.Processor
	Browser  browser.Context // optional
	Titles   Titler          // optional
	Notifier notify.Notifier // optional
	Log      logger.Logger   // optional
	Now      func() time.Time
}

// NewService creates a Service.
func NewService(params ServiceParams) *Service {
	s := &Service{
		store:    params.Store,
		ai:       params.AI,
		browser:  params.Browser,
		titles:   params.Titles,
		notifier: params.Notifier,
		log:      params.Log,
		now:      params.Now,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.ai == nil {
		s.ai = ai.NewProcessor(nil, s.log)
	}
	if s.browser == nil {
		s.browser = browser.StaticContext{}
	}
	if s.notifier == nil {
		s.notifier = notify.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Quick classifies free text by its inline marker, enriches it with the
// type's processor and saves it.
func (s *Service) Quick(ctx context.Context, text string) (model.Blink, error) {
	input := strings.TrimSpace(text)
	if input == "" {
		return model.Blink{}, ErrEmptyInput
	}

	typ, content := DetectType(input)
	s.log.Debug("quick capture", logger.String("type", string(typ)))

	done := s.notifier.Loading("Capturing")
	params, err := s.quickParams(ctx, typ, content)
	done()
	if err != nil {
		return model.Blink{}, err
	}

	return s.save(ctx, params)
}

// quickParams runs the AI processing for one detected type.
func (s *Service) quickParams(ctx context.Context, typ model.Type, content string) (model.NewBlinkParams, error) {
	params := model.NewBlinkParams{Type: typ}
	switch typ {
	case model.TypeBookmark:
		pageURL, tab, err := s.bookmarkURL(ctx, content)
		if err != nil {
			return params, err
		}
		res, err := s.ai.Bookmark(ctx, s.pageTitle(ctx, pageURL, tab.Title), pageURL)
		if err != nil {
			return params, err
		}
		params.Title, params.Description, params.Source = res.Title, res.Description, pageURL

	case model.TypeReminder:
		if date, ok := s.ai.ExtractDate(ctx, content, s.now()); ok {
			params.ReminderDate = &date
		}
		res, err := s.ai.Reminder(ctx, content)
		if err != nil {
			return params, err
		}
		params.Title, params.Description = res.Title, res.Description

	case model.TypeQuote:
		res, err := s.ai.Quote(ctx, content)
		if err != nil {
			return params, err
		}
		params.Title, params.Description, params.Author = res.Title, res.Description, res.Author

	default:
		res, err := s.ai.Thought(ctx, content)
		if err != nil {
			return params, err
		}
		params.Title, params.Description = res.Title, res.Description
	}

	return params, nil
}

// bookmarkURL takes the URL from the text, falling back to the active tab.
func (s *Service) bookmarkURL(ctx context.Context, text string) (string, browser.Tab, error) {
	if u, ok := s.ai.ExtractURL(ctx, text); ok {
		return u, browser.Tab{}, nil
	}
	if tab, ok := s.browser.ActiveTab(ctx); ok {
		return tab.URL, tab, nil
	}
	return "", browser.Tab{}, ErrNoURL
}

// pageTitle resolves a title from the page itself, then the model, then
// falls back to the URL.
func (s *Service) pageTitle(ctx context.Context, pageURL, known string) string {
	if known = strings.TrimSpace(known); known != "" {
		return known
	}
	if s.titles != nil {
		title, err := s.titles.Title(ctx, pageURL)
		if err == nil && title != "" {
			return title
		}
		s.log.Debug("page title fetch failed", logger.String("url", pageURL), logger.Error(err))
	}
	if title, ok := s.ai.PageTitle(ctx, pageURL); ok {
		return title
	}
	return pageURL
}

// Form is the full capture form.
type Form struct {
	Type          model.Type
	Title         string
	ReminderDate  *time.Time
	Source        string
	UseBrowserTab bool
	// Raw saves the title as typed, without AI enrichment.
	Raw bool
}

// Capture validates the form, runs the type's processor and saves the
// result.
func (s *Service) Capture(ctx context.Context, form Form) (model.Blink, error) {
	if !form.Type.Valid() {
		return model.Blink{}, fmt.Errorf("%w: %q", model.ErrInvalidType, form.Type)
	}
	if form.Type == model.TypeReminder && form.ReminderDate == nil {
		return model.Blink{}, model.ErrMissingReminderDate
	}
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return model.Blink{}, model.ErrEmptyTitle
	}

	source := strings.TrimSpace(form.Source)
	if form.UseBrowserTab {
		if tab, ok := s.browser.ActiveTab(ctx); ok {
			source = tab.URL
		} else {
			s.log.Debug("no active tab for capture")
		}
	}

	params := model.NewBlinkParams{
		Type:         form.Type,
		Title:        title,
		Source:       source,
		ReminderDate: form.ReminderDate,
	}
	if form.Raw {
		return s.save(ctx, params)
	}

	done := s.notifier.Loading("Processing Blink")
	res, err := s.process(ctx, form.Type, title, source)
	done()
	if err != nil {
		return model.Blink{}, err
	}
	if res.Title != "" {
		params.Title = res.Title
	}
	params.Description, params.Author = res.Description, res.Author

	return s.save(ctx, params)
}

func (s *Service) process(ctx context.Context, typ model.Type, title, source string) (ai.Result, error) {
	switch typ {
	case model.TypeQuote:
		return s.ai.Quote(ctx, title)
	case model.TypeReminder:
		return s.ai.Reminder(ctx, title)
	case model.TypeBookmark:
		if source == "" {
			return ai.Result{Title: title}, nil
		}
		return s.ai.Bookmark(ctx, title, source)
	}
	return s.ai.Thought(ctx, title)
}

func (s *Service) save(ctx context.Context, params model.NewBlinkParams) (model.Blink, error) {
	b := model.NewBlink(params)
	b.CreatedOn = s.now()
	if err := b.Validate(); err != nil {
		return model.Blink{}, err
	}

	saved, err := s.store.Create(ctx, b)
	if err != nil {
		return model.Blink{}, err
	}
	s.notifier.Success(saved.Type.Display()+" captured ✅", "")
	s.log.Info("blink captured", logger.String("id", saved.ID), logger.String("type", string(saved.Type)))
	return saved, nil
}

// EditForm holds the editable fields of a Blink.
type EditForm struct {
	Type         model.Type
	Title        string
	Source       string
	ReminderDate *time.Time
	Author       string
	Description  string
}

// FormFor prefills an EditForm from b.
func FormFor(b model.Blink) EditForm {
	return EditForm{
		Type:         b.Type,
		Title:        b.Title,
		Source:       b.Source,
		ReminderDate: b.ReminderDate,
		Author:       b.Author,
		Description:  b.Description,
	}
}

// Edit applies form to the Blink with id. The reminder date is kept only
// for reminders and the author only for quotes. Empty source and
// description leave the stored values in place.
func (s *Service) Edit(ctx context.Context, id string, form EditForm) (model.Blink, error) {
	if !form.Type.Valid() {
		return model.Blink{}, fmt.Errorf("%w: %q", model.ErrInvalidType, form.Type)
	}
	if form.Type == model.TypeReminder && form.ReminderDate == nil {
		return model.Blink{}, model.ErrMissingReminderDate
	}

	blinks, err := s.store.List(ctx)
	if err != nil {
		return model.Blink{}, err
	}
	found := model.FindByID(blinks, id)
	if found == nil {
		return model.Blink{}, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}

	b := *found
	b.Type = form.Type
	b.Title = strings.TrimSpace(form.Title)
	if v := strings.TrimSpace(form.Source); v != "" {
		b.Source = v
	}
	if v := strings.TrimSpace(form.Description); v != "" {
		b.Description = v
	}
	b.ReminderDate = nil
	if b.Type == model.TypeReminder {
		b.ReminderDate = form.ReminderDate
	}
	b.Author = ""
	if b.Type == model.TypeQuote {
		b.Author = strings.TrimSpace(form.Author)
	}
	if b.Type != model.TypeReminder {
		b.IsCompleted, b.CompletedAt = false, nil
	}

	if err := b.Validate(); err != nil {
		return model.Blink{}, err
	}
	if err := s.store.Update(ctx, b); err != nil {
		return model.Blink{}, err
	}
	s.notifier.Success("Blink updated", fmt.Sprintf("%q saved", b.Title))
	return b, nil
}
