package ai

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/nikbrunner/blink/internal/logger"
)

const (
	maxThoughtTitle  = 60
	maxReminderTitle = 40

	noURL  = "NO_URL"
	noDate = "NO_DATE"
)

var (
	ErrEmptyInput = errors.New("empty input")
	ErrProcessing = errors.New("AI processing failed")
)

// Processor turns raw captured text into normalized Blink fields.
type Processor struct {
	model  Model
	policy RetryPolicy
	log    logger.Logger
}

// NewProcessor creates a Processor. m may be nil, in which case every call
// fails with ErrUpgradeRequired.
func NewProcessor(m Model, log logger.Logger) *Processor {
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{model: m, policy: DefaultRetryPolicy(), log: log}
}

// WithRetryPolicy returns a copy using policy.
func (p *Processor) WithRetryPolicy(policy RetryPolicy) *Processor {
	cp := *p
	cp.policy = policy
	return &cp
}

// Available reports whether a model is configured.
func (p *Processor) Available() bool {
	return CheckAccess(p.model) == nil
}

func (p *Processor) ask(ctx context.Context, prompt string, creativity Creativity) (string, error) {
	return AskWithRetry(ctx, p.model, prompt, AskOptions{Creativity: creativity}, p.policy)
}

// askJSON asks and decodes the answer into dst.
func (p *Processor) askJSON(ctx context.Context, prompt string, creativity Creativity, expected []string, dst any) error {
	raw, err := p.ask(ctx, prompt, creativity)
	if err != nil {
		return err
	}
	if err := ParseJSON(raw, expected, dst); err != nil {
		p.log.Debug("unparsable AI answer", logger.String("raw", raw), logger.Error(err))
		return err
	}
	return nil
}

// Thought builds a title and a summary for a free-form thought.
func (p *Processor) Thought(ctx context.Context, text string) (Result, error) {
	thought := strings.TrimSpace(text)
	if thought == "" {
		return Result{}, fmt.Errorf("%w: empty thought provided", ErrEmptyInput)
	}
	if err := CheckAccess(p.model); err != nil {
		return Result{}, err
	}

	var title struct {
		Title string `json:"title"`
	}
	if err := p.askJSON(ctx, thoughtTitlePrompt(thought), CreativityLow, []string{"title"}, &title); err != nil {
		return Result{}, processingError("thought", err)
	}
	if strings.TrimSpace(title.Title) == "" {
		return Result{}, processingError("thought", fmt.Errorf("%w: empty title", ErrMissingFields))
	}

	var summary struct {
		Summary string `json:"summary"`
	}
	if err := p.askJSON(ctx, thoughtSummaryPrompt(thought), CreativityLow, []string{"summary"}, &summary); err != nil {
		return Result{}, processingError("thought", err)
	}

	return Result{
		Title:       ClampRunes(Clean(title.Title), maxThoughtTitle),
		Description: Clean(summary.Summary),
	}, nil
}

// Reminder builds an action title and a context description.
// Single-word reminders are only capitalized.
func (p *Processor) Reminder(ctx context.Context, text string) (Result, error) {
	reminder := strings.TrimSpace(text)
	if reminder == "" {
		return Result{}, fmt.Errorf("%w: empty reminder provided", ErrEmptyInput)
	}
	if !strings.ContainsAny(reminder, " \t\n") {
		return Result{Title: CapitalizeFirst(reminder)}, nil
	}
	if err := CheckAccess(p.model); err != nil {
		return Result{}, err
	}

	var title struct {
		Title string `json:"title"`
	}
	if err := p.askJSON(ctx, reminderTitlePrompt(reminder), CreativityLow, []string{"title"}, &title); err != nil {
		return Result{}, processingError("reminder", err)
	}
	if strings.TrimSpace(title.Title) == "" {
		return Result{}, processingError("reminder", fmt.Errorf("%w: empty title", ErrMissingFields))
	}

	// An empty description is a valid answer.
	var desc struct {
		Description string `json:"description"`
	}
	if err := p.askJSON(ctx, reminderDescriptionPrompt(reminder), CreativityLow, []string{"description"}, &desc); err != nil {
		return Result{}, processingError("reminder", err)
	}

	return Result{
		Title:       ClampRunes(Clean(title.Title), maxReminderTitle),
		Description: Clean(desc.Description),
	}, nil
}

// Quote cleans attribution out of a quote and resolves its author.
// Any failure after the access check degrades to the trimmed input.
func (p *Processor) Quote(ctx context.Context, text string) (Result, error) {
	quote := strings.TrimSpace(text)
	if quote == "" {
		return Result{}, fmt.Errorf("%w: empty quote provided", ErrEmptyInput)
	}
	if err := CheckAccess(p.model); err != nil {
		return Result{}, err
	}

	res, err := p.quote(ctx, quote)
	if err != nil {
		p.log.Warn("quote processing degraded", logger.Error(err))
		return Result{Title: quote}, nil
	}
	return res, nil
}

func (p *Processor) quote(ctx context.Context, quote string) (Result, error) {
	var ident quoteIdentification
	if err := p.askJSON(ctx, quoteIdentifyPrompt(quote), CreativityLow, []string{"identifiedAuthor"}, &ident); err != nil {
		return Result{}, err
	}

	var cleaned quoteCleaning
	if err := p.askJSON(ctx, quoteCleanPrompt(quote), CreativityNone, []string{"cleanedQuote", "attributedAuthor"}, &cleaned); err != nil {
		return Result{}, err
	}

	formatted := Clean(cleaned.CleanedQuote)
	if formatted == "" {
		return Result{}, fmt.Errorf("%w: empty cleanedQuote", ErrMissingFields)
	}

	identified := strings.TrimSpace(deref(ident.IdentifiedAuthor))
	attributed := strings.TrimSpace(deref(cleaned.AttributedAuthor))
	note := strings.TrimSpace(deref(ident.Description))

	switch {
	case attributed == "":
		if identified == "" {
			return Result{Title: formatted}, nil
		}
		return Result{Title: formatted, Author: identified, Description: note}, nil

	case identified == "":
		return Result{Title: formatted, Author: attributed}, nil
	}

	var cmp nameComparison
	if err := p.askJSON(ctx, compareNamesPrompt(attributed, identified), CreativityNone, []string{"isSamePerson"}, &cmp); err != nil {
		return Result{}, err
	}
	if cmp.IsSamePerson {
		return Result{Title: formatted, Author: identified, Description: note}, nil
	}
	return Result{Title: formatted, Author: attributed}, nil
}

// Bookmark summarizes a page from its title and URL.
// A failed summary degrades to the title with no description.
func (p *Processor) Bookmark(ctx context.Context, title, pageURL string) (Result, error) {
	title = strings.TrimSpace(title)
	pageURL = strings.TrimSpace(pageURL)
	if title == "" && pageURL == "" {
		return Result{}, fmt.Errorf("%w: empty bookmark provided", ErrEmptyInput)
	}
	if title == "" {
		title = pageURL
	}
	if err := CheckAccess(p.model); err != nil {
		return Result{}, err
	}

	summary, err := p.ask(ctx, bookmarkSummaryPrompt(title, pageURL), CreativityLow)
	if err != nil {
		p.log.Warn("bookmark summary degraded", logger.String("url", pageURL), logger.Error(err))
		return Result{Title: title}, nil
	}

	return Result{Title: title, Description: Clean(StripFences(summary))}, nil
}

var urlRegex = regexp.MustCompile(`https?://[^\s<>"']+`)

// ExtractURL finds a URL in text, locally first and then by asking the model.
func (p *Processor) ExtractURL(ctx context.Context, text string) (string, bool) {
	if found := urlRegex.FindString(text); found != "" {
		if u, ok := validURL(strings.TrimRight(found, ".,;:!?)")); ok {
			return u, true
		}
	}
	if strings.TrimSpace(text) == "" || !p.Available() {
		return "", false
	}

	answer, err := p.ask(ctx, urlExtractionPrompt(text), CreativityLow)
	if err != nil {
		p.log.Debug("url extraction failed", logger.Error(err))
		return "", false
	}
	answer = StripQuotes(strings.TrimSpace(answer))
	if answer == noURL {
		return "", false
	}
	return validURL(answer)
}

// PageTitle asks the model for the title of a page.
func (p *Processor) PageTitle(ctx context.Context, pageURL string) (string, bool) {
	if !p.Available() {
		return "", false
	}
	answer, err := p.ask(ctx, pageTitlePrompt(pageURL), CreativityLow)
	if err != nil {
		p.log.Debug("page title lookup failed", logger.Error(err))
		return "", false
	}
	title := Clean(answer)
	return title, title != ""
}

// ExtractDate resolves a due date mentioned in text relative to now.
func (p *Processor) ExtractDate(ctx context.Context, text string, now time.Time) (time.Time, bool) {
	if strings.TrimSpace(text) == "" || !p.Available() {
		return time.Time{}, false
	}
	answer, err := p.ask(ctx, dateExtractionPrompt(text, now), CreativityLow)
	if err != nil {
		p.log.Debug("date extraction failed", logger.Error(err))
		return time.Time{}, false
	}
	return ParseDateAnswer(answer, now.Location())
}

// ParseDateAnswer parses a date answer, accepting RFC 3339 or a local
// timestamp without offset. NO_DATE and garbage yield false.
func ParseDateAnswer(answer string, loc *time.Location) (time.Time, bool) {
	answer = StripQuotes(StripFences(answer))
	if answer == "" || answer == noDate {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, answer); err == nil {
		return t, true
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, answer, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func validURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return u.String(), true
}

func processingError(kind string, err error) error {
	if errors.Is(err, ErrUpgradeRequired) {
		return err
	}
	return fmt.Errorf("%w: failed to process %s: %v", ErrProcessing, kind, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
