package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	DefaultVersion = "2025-09-03"
	pageSize       = 100
)

var (
	ErrNoToken     = errors.New("no Notion API token configured")
	ErrNoDatabase  = errors.New("no Notion database ID configured")
	ErrNotFound    = errors.New("notion: object not found")
	ErrPartialPage = errors.New("notion: page metadata incomplete")
)

// APIError is an error object returned by the Notion API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion: %s (%d): %s", e.Code, e.Status, e.Message)
}

// Is makes a 404 match ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client talks to the Notion REST API.
type Client struct {
	token      string
	baseURL    string
	version    string
	httpClient *http.Client
}

// ClientParams holds parameters for creating a Client.
type ClientParams struct {
	Token      string
	BaseURL    string       // optional, for tests
	Version    string       // optional, defaults to DefaultVersion
	HTTPClient *http.Client // optional
}

// NewClient creates a Notion client. Returns ErrNoToken if no token is given.
func NewClient(params ClientParams) (*Client, error) {
	if params.Token == "" {
		return nil, ErrNoToken
	}

	c := &Client{
		token:      params.Token,
		baseURL:    params.BaseURL,
		version:    params.Version,
		httpClient: params.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.version == "" {
		c.version = DefaultVersion
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return c, nil
}

// RetrieveDatabase fetches a database and its data sources.
func (c *Client) RetrieveDatabase(ctx context.Context, id string) (*Database, error) {
	var db Database
	if err := c.do(ctx, http.MethodGet, "/databases/"+url.PathEscape(id), nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

// QueryDataSource returns one page of rows from a data source.
func (c *Client) QueryDataSource(ctx context.Context, id, cursor string) (*QueryResponse, error) {
	var resp QueryResponse
	body := queryRequest{StartCursor: cursor, PageSize: pageSize}
	if err := c.do(ctx, http.MethodPost, "/data_sources/"+url.PathEscape(id)+"/query", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type searchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type searchRequest struct {
	Filter      searchFilter `json:"filter"`
	StartCursor string       `json:"start_cursor,omitempty"`
	PageSize    int          `json:"page_size,omitempty"`
}

// Search returns one page of pages shared with the integration.
func (c *Client) Search(ctx context.Context, cursor string) (*QueryResponse, error) {
	var resp QueryResponse
	body := searchRequest{
		Filter:      searchFilter{Property: "object", Value: "page"},
		StartCursor: cursor,
		PageSize:    pageSize,
	}
	if err := c.do(ctx, http.MethodPost, "/search", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrievePage fetches a single page.
func (c *Client) RetrievePage(ctx context.Context, id string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/pages/"+url.PathEscape(id), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePageRequest is the body of a page creation.
type CreatePageRequest struct {
	Parent     Parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
}

// CreatePage creates a page.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPost, "/pages", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePageRequest is the body of a partial page update.
type UpdatePageRequest struct {
	Properties map[string]PropertyValue `json:"properties,omitempty"`
	Archived   *bool                    `json:"archived,omitempty"`
}

// UpdatePage patches a page.
func (c *Client) UpdatePage(ctx context.Context, id string, req UpdatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPatch, "/pages/"+url.PathEscape(id), req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
			apiErr.Message = string(data)
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
