package notion

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nikbrunner/blink/internal/logger"
)

// PageAPI is the typed boundary the storage layer uses.
type PageAPI interface {
	ListPages(ctx context.Context) ([]Page, error)
	GetPage(ctx context.Context, id string) (*Page, error)
	CreatePage(ctx context.Context, props map[string]PropertyValue) (*Page, error)
	UpdatePage(ctx context.Context, id string, props map[string]PropertyValue) (*Page, error)
	ArchivePage(ctx context.Context, id string) error
}

// DatabaseAPI implements PageAPI for the pages of one database.
// It queries the database's first data source when it has one, and
// otherwise searches all pages and keeps those whose parent is the database.
type DatabaseAPI struct {
	client     *Client
	databaseID string
	log        logger.Logger

	mu           sync.Mutex
	resolved     bool
	dataSourceID string
}

// NewDatabaseAPI creates a DatabaseAPI. Returns ErrNoDatabase if databaseID is empty.
func NewDatabaseAPI(client *Client, databaseID string, log logger.Logger) (*DatabaseAPI, error) {
	if databaseID == "" {
		return nil, ErrNoDatabase
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DatabaseAPI{client: client, databaseID: databaseID, log: log}, nil
}

// resolve looks up the database's data source once per DatabaseAPI.
// An empty id means the search fallback is used.
func (a *DatabaseAPI) resolve(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.resolved {
		return a.dataSourceID, nil
	}

	db, err := a.client.RetrieveDatabase(ctx, a.databaseID)
	if err != nil {
		return "", fmt.Errorf("retrieve database: %w", err)
	}
	if len(db.DataSources) > 0 {
		a.dataSourceID = db.DataSources[0].ID
		a.log.Debug("notion: querying data source", logger.String("data_source", a.dataSourceID))
	} else {
		a.log.Debug("notion: database has no data sources, falling back to search")
	}
	a.resolved = true
	return a.dataSourceID, nil
}

// ListPages returns every full page in the database.
func (a *DatabaseAPI) ListPages(ctx context.Context) ([]Page, error) {
	dataSourceID, err := a.resolve(ctx)
	if err != nil {
		return nil, err
	}

	var (
		pages  []Page
		cursor string
	)
	for {
		var resp *QueryResponse
		if dataSourceID != "" {
			resp, err = a.client.QueryDataSource(ctx, dataSourceID, cursor)
		} else {
			resp, err = a.client.Search(ctx, cursor)
		}
		if err != nil {
			return nil, err
		}

		for _, p := range resp.Results {
			if !p.IsFull() {
				continue
			}
			if dataSourceID == "" && !a.inDatabase(p) {
				continue
			}
			pages = append(pages, p)
		}

		if cursor = resp.Cursor(); cursor == "" {
			break
		}
	}

	a.log.Debug("notion: listed pages", logger.Int("count", len(pages)))
	return pages, nil
}

func (a *DatabaseAPI) inDatabase(p Page) bool {
	return p.Parent.Type == "database_id" && sameID(p.Parent.DatabaseID, a.databaseID)
}

// GetPage fetches one full page.
func (a *DatabaseAPI) GetPage(ctx context.Context, id string) (*Page, error) {
	page, err := a.client.RetrievePage(ctx, id)
	if err != nil {
		return nil, err
	}
	if !page.IsFull() {
		return nil, ErrPartialPage
	}
	return page, nil
}

// CreatePage creates a page in the database.
func (a *DatabaseAPI) CreatePage(ctx context.Context, props map[string]PropertyValue) (*Page, error) {
	dataSourceID, err := a.resolve(ctx)
	if err != nil {
		return nil, err
	}

	parent := Parent{Type: "database_id", DatabaseID: a.databaseID}
	if dataSourceID != "" {
		parent = Parent{Type: "data_source_id", DataSourceID: dataSourceID}
	}
	return a.client.CreatePage(ctx, CreatePageRequest{Parent: parent, Properties: props})
}

// UpdatePage patches the given properties of a page.
func (a *DatabaseAPI) UpdatePage(ctx context.Context, id string, props map[string]PropertyValue) (*Page, error) {
	return a.client.UpdatePage(ctx, id, UpdatePageRequest{Properties: props})
}

// ArchivePage moves a page to the trash.
func (a *DatabaseAPI) ArchivePage(ctx context.Context, id string) error {
	archived := true
	_, err := a.client.UpdatePage(ctx, id, UpdatePageRequest{Archived: &archived})
	return err
}

// sameID compares Notion ids, which may be given with or without dashes.
func sameID(a, b string) bool {
	norm := func(s string) string { return strings.ToLower(strings.ReplaceAll(s, "-", "")) }
	return norm(a) == norm(b)
}
