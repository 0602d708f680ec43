package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikbrunner/blink/internal/logger"
	"github.com/nikbrunner/blink/internal/model"
	"github.com/nikbrunner/blink/internal/notify"
	"github.com/nikbrunner/blink/internal/notion"
)

// Property names of the Notion database schema.
const (
	PropTitle        = "Title"
	PropType         = "Type"
	PropContext      = "Context"
	PropURL          = "URL"
	PropAuthor       = "Author"
	PropReminderDate = "Reminder Date"
	PropIsCompleted  = "Is Completed"
	PropCompletedAt  = "Completed At"

	untitled = "Untitled"
)

// NotionStorage implements Storage on top of a Notion database.
type NotionStorage struct {
	api      notion.PageAPI
	notifier notify.Notifier
	log      logger.Logger
	now      func() time.Time
}

// NotionParams holds parameters for creating a NotionStorage.
type NotionParams struct {
	API      notion.PageAPI
	Notifier notify.Notifier // optional
	Log      logger.Logger   // optional
	Now      func() time.Time
}

// NewNotionStorage creates a NotionStorage.
func NewNotionStorage(params NotionParams) *NotionStorage {
	s := &NotionStorage{
		api:      params.API,
		notifier: params.Notifier,
		log:      params.Log,
		now:      params.Now,
	}
	if s.notifier == nil {
		s.notifier = notify.Nop{}
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// fail notifies the user and returns err, translating a missing page
// into ErrNotFound.
func (s *NotionStorage) fail(title, id string, err error) error {
	s.notifier.Failure(title, err.Error())
	s.log.Warn(title, logger.String("id", id), logger.Error(err))
	if errors.Is(err, notion.ErrNotFound) {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, id, err)
	}
	return err
}

func (s *NotionStorage) List(ctx context.Context) ([]model.Blink, error) {
	pages, err := s.api.ListPages(ctx)
	if err != nil {
		return nil, s.fail("Notion query failed", "", err)
	}

	blinks := make([]model.Blink, 0, len(pages))
	for _, p := range pages {
		blinks = append(blinks, PageToBlink(p))
	}
	return blinks, nil
}

func (s *NotionStorage) Create(ctx context.Context, b model.Blink) (model.Blink, error) {
	page, err := s.api.CreatePage(ctx, BlinkToProperties(b, false))
	if err != nil {
		return model.Blink{}, s.fail("Failed to save blink", "", err)
	}

	b.ID = page.ID
	if !page.CreatedTime.IsZero() {
		b.CreatedOn = page.CreatedTime
	}
	return b, nil
}

func (s *NotionStorage) Update(ctx context.Context, b model.Blink) error {
	if b.ID == "" {
		return fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if _, err := s.api.UpdatePage(ctx, b.ID, BlinkToProperties(b, true)); err != nil {
		return s.fail("Failed to update blink", b.ID, err)
	}
	return nil
}

// Delete archives the page.
func (s *NotionStorage) Delete(ctx context.Context, id string) error {
	if err := s.api.ArchivePage(ctx, id); err != nil {
		return s.fail("Failed to delete blink", id, err)
	}
	return nil
}

// ToggleCompletion reads the current state and writes both completion
// properties in a single update.
func (s *NotionStorage) ToggleCompletion(ctx context.Context, id string) error {
	page, err := s.api.GetPage(ctx, id)
	if err != nil {
		return s.fail("Failed to toggle completion", id, err)
	}

	completed := !page.Properties[PropIsCompleted].Checkbox
	completedAt := notion.ClearDateProperty()
	if completed {
		completedAt = notion.DateProperty(s.now())
	}

	props := map[string]notion.PropertyValue{
		PropIsCompleted: notion.CheckboxProperty(completed),
		PropCompletedAt: completedAt,
	}
	if _, err := s.api.UpdatePage(ctx, id, props); err != nil {
		return s.fail("Failed to toggle completion", id, err)
	}
	return nil
}

func (s *NotionStorage) Close() error { return nil }

// BlinkToProperties maps a Blink onto the database schema. Absent fields
// are omitted. For updates of an incomplete reminder, Completed At is
// cleared explicitly.
func BlinkToProperties(b model.Blink, update bool) map[string]notion.PropertyValue {
	props := map[string]notion.PropertyValue{
		PropTitle: notion.TitleProperty(b.Title),
		PropType:  notion.SelectProperty(b.Type.Display()),
	}

	if b.Description != "" {
		props[PropContext] = notion.RichTextProperty(b.Description)
	}
	if b.Source != "" {
		props[PropURL] = notion.URLProperty(b.Source)
	}
	if b.Author != "" {
		props[PropAuthor] = notion.RichTextProperty(b.Author)
	}
	if b.ReminderDate != nil {
		props[PropReminderDate] = notion.DateProperty(*b.ReminderDate)
	}
	if b.IsReminder() {
		props[PropIsCompleted] = notion.CheckboxProperty(b.IsCompleted)
	}
	switch {
	case b.CompletedAt != nil:
		props[PropCompletedAt] = notion.DateProperty(*b.CompletedAt)
	case update && b.IsReminder() && !b.IsCompleted:
		props[PropCompletedAt] = notion.ClearDateProperty()
	}

	return props
}

// PageToBlink converts a Notion page into a Blink. A missing type reads as
// a thought and a missing title as "Untitled".
func PageToBlink(p notion.Page) model.Blink {
	props := p.Properties

	b := model.Blink{
		ID:          p.ID,
		Type:        model.TypeThought,
		Title:       strings.TrimSpace(notion.PlainText(props[PropTitle].Title)),
		Description: strings.TrimSpace(notion.PlainText(props[PropContext].RichText)),
		Author:      strings.TrimSpace(notion.PlainText(props[PropAuthor].RichText)),
		IsCompleted: props[PropIsCompleted].Checkbox,
		CreatedOn:   p.CreatedTime,
	}

	if b.Title == "" {
		b.Title = untitled
	}
	if sel := props[PropType].Select; sel != nil {
		if t, err := model.ParseType(sel.Name); err == nil {
			b.Type = t
		}
	}
	if u := props[PropURL].URL; u != nil {
		b.Source = *u
	}
	if t, ok := notion.ParseDate(props[PropReminderDate].Date); ok {
		b.ReminderDate = &t
	}
	if t, ok := notion.ParseDate(props[PropCompletedAt].Date); ok {
		b.CompletedAt = &t
	}

	return b
}
