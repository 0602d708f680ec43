package storage

import (
	"fmt"
	"path/filepath"

	"github.com/nikbrunner/blink/internal/logger"
	"github.com/nikbrunner/blink/internal/notify"
	"github.com/nikbrunner/blink/internal/notion"
)

// Backend names accepted in the config.
const (
	BackendNotion = "notion"
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Dir       string // data directory for local backends and state
	BlinksKey string // base name of the local Blinks file

	NotionToken      string
	NotionDatabaseID string
	NotionVersion    string

	Notifier notify.Notifier
	Log      logger.Logger
}

// Open opens the configured backend.
func Open(opts Options) (Storage, error) {
	switch opts.Backend {
	case BackendNotion:
		client, err := notion.NewClient(notion.ClientParams{
			Token:   opts.NotionToken,
			Version: opts.NotionVersion,
		})
		if err != nil {
			return nil, err
		}
		api, err := notion.NewDatabaseAPI(client, opts.NotionDatabaseID, opts.Log)
		if err != nil {
			return nil, err
		}
		return NewNotionStorage(NotionParams{API: api, Notifier: opts.Notifier, Log: opts.Log}), nil

	case BackendSQLite:
		return NewSQLiteStorage(filepath.Join(opts.Dir, opts.BlinksKey+".db"))

	case BackendJSON:
		return NewJSONStorage(filepath.Join(opts.Dir, opts.BlinksKey+".json")), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
}

// StateKV returns the KV for local state. Backends that store state
// themselves are used directly, otherwise state.json in dir.
func StateKV(s Storage, dir string) KV {
	if kv, ok := s.(KV); ok {
		return kv
	}
	return NewFileKV(filepath.Join(dir, "state.json"))
}
