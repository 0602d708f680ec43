package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikbrunner/blink/internal/ai"
	"github.com/nikbrunner/blink/internal/browser"
	"github.com/nikbrunner/blink/internal/capture"
	"github.com/nikbrunner/blink/internal/cleanup"
	"github.com/nikbrunner/blink/internal/config"
	"github.com/nikbrunner/blink/internal/logger"
	"github.com/nikbrunner/blink/internal/notify"
	"github.com/nikbrunner/blink/internal/storage"
	"github.com/nikbrunner/blink/internal/webpage"
)

// commandError carries the failure title shown for an error.
type commandError struct {
	title string
	err   error
}

func (e *commandError) Error() string { return e.title + ": " + e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

func fail(title string, err error) error {
	return &commandError{title: title, err: err}
}

// env holds everything a command needs.
type env struct {
	cfg      config.Config
	log      logger.Logger
	notifier notify.Notifier
	store    storage.Storage
}

func newEnv(notifier notify.Notifier) (*env, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, fail("Error getting config path", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fail("Error loading config", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	store, err := storage.Open(storage.Options{
		Backend:          cfg.Backend(),
		Dir:              cfg.DataDir(),
		BlinksKey:        cfg.Storage.BlinksKey,
		NotionToken:      cfg.Notion.Token,
		NotionDatabaseID: cfg.Notion.DatabaseID,
		NotionVersion:    cfg.Notion.Version,
		Notifier:         notifier,
		Log:              log,
	})
	if err != nil {
		return nil, fail("Error opening storage", err)
	}
	log.Debug("storage opened", logger.String("backend", cfg.Backend()))
	if local, ok := store.(interface{ Path() string }); ok {
		log.Debug("local data file", logger.String("path", local.Path()))
	}

	return &env{cfg: cfg, log: log, notifier: notifier, store: store}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("failed to close storage", logger.Error(err))
	}
	_ = e.log.Sync()
}

// sweeper builds the cleanup sweeper with the persisted rate limiter.
func (e *env) sweeper() *cleanup.Sweeper {
	limiter := &cleanup.RateLimiter{
		KV:       storage.StateKV(e.store, e.cfg.DataDir()),
		Key:      e.cfg.Cleanup.Key,
		Interval: e.cfg.CleanupInterval(),
	}
	return cleanup.NewSweeper(e.store, limiter, e.log)
}

// service builds the capture service with the configured AI provider.
func (e *env) service(ctx context.Context) (*capture.Service, error) {
	m, err := newModel(ctx, e.cfg.AI)
	if err != nil {
		return nil, fail("Error configuring AI", err)
	}
	return capture.NewService(capture.ServiceParams{
		Store:    e.store,
		AI:       ai.NewProcessor(m, e.log),
		Browser:  browser.NewClipboardContext(),
		Titles:   webpage.NewFetcher(nil),
		Notifier: e.notifier,
		Log:      e.log,
	}), nil
}

// newModel picks the AI provider. An empty provider uses the first one
// with a key. No key at all returns a nil Model.
func newModel(ctx context.Context, cfg config.AIConfig) (ai.Model, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		switch {
		case cfg.AnthropicAPIKey != "":
			provider = "anthropic"
		case cfg.GoogleAPIKey != "":
			provider = "gemini"
		default:
			provider = "none"
		}
	}

	switch provider {
	case "none":
		return nil, nil

	case "anthropic":
		client, err := ai.NewClient(ai.ClientParams{APIKey: cfg.AnthropicAPIKey, Model: cfg.AnthropicModel})
		if errors.Is(err, ai.ErrNoAPIKey) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return client, nil

	case "gemini":
		client, err := ai.NewGeminiClient(ctx, ai.GeminiParams{APIKey: cfg.GoogleAPIKey, Model: cfg.GeminiModel})
		if errors.Is(err, ai.ErrNoAPIKey) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDate reads a reminder date in local time. A bare date means 09:00.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			t = t.Add(9 * time.Hour)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD [HH:MM]", s)
}
