package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements Model using Google's Generative AI API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// GeminiParams holds parameters for creating a GeminiClient.
type GeminiParams struct {
	APIKey     string
	Model      string       // optional, defaults to DefaultGeminiModel
	BaseURL    string       // optional, for tests
	HTTPClient *http.Client // optional
}

// NewGeminiClient creates a Gemini-backed Model.
func NewGeminiClient(ctx context.Context, params GeminiParams) (*GeminiClient, error) {
	if params.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	config := &genai.ClientConfig{
		APIKey:     params.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: params.HTTPClient,
	}
	if params.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: params.BaseURL}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := params.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Ask implements Model.
func (g *GeminiClient) Ask(ctx context.Context, prompt string, opts AskOptions) (string, error) {
	temperature := float32(opts.Creativity)
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAPIRequest, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrInvalidResponse
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", ErrInvalidResponse
	}

	return text.String(), nil
}
