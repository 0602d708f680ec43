package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAnthropicURL = "https://api.anthropic.com/v1/messages"
	apiVersion          = "2023-06-01"
	DefaultHaikuModel   = "claude-haiku-4-5-20251001"
	defaultMaxTokens    = 512
)

var (
	ErrNoAPIKey        = errors.New("no API key configured")
	ErrAPIRequest      = errors.New("API request failed")
	ErrInvalidResponse = errors.New("invalid API response")
)

// StatusError is a non-200 answer from a model API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Client handles communication with the Anthropic Messages API.
type Client struct {
	apiKey     string
	model      string
	url        string
	httpClient *http.Client
}

// ClientParams holds parameters for creating a Client.
type ClientParams struct {
	APIKey     string
	Model      string       // optional, defaults to DefaultHaikuModel
	URL        string       // optional, for tests
	HTTPClient *http.Client // optional
}

// NewClient creates a new Anthropic client.
// Returns ErrNoAPIKey if no key is given.
func NewClient(params ClientParams) (*Client, error) {
	if params.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	c := &Client{
		apiKey:     params.APIKey,
		model:      params.Model,
		url:        params.URL,
		httpClient: params.HTTPClient,
	}
	if c.model == "" {
		c.model = DefaultHaikuModel
	}
	if c.url == "" {
		c.url = defaultAnthropicURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return c, nil
}

// Ask sends a single user message and returns the text of the reply.
func (c *Client) Ask(ctx context.Context, prompt string, opts AskOptions) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	reqBody := apiRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: float32(opts.Creativity),
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAPIRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %w", ErrAPIRequest, &StatusError{Code: resp.StatusCode, Body: string(body)})
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	var text strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", ErrInvalidResponse
	}

	return text.String(), nil
}
