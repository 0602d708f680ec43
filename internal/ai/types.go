package ai

import "context"

// Creativity is the sampling temperature sent to the model.
type Creativity float32

const (
	CreativityNone Creativity = 0
	CreativityLow  Creativity = 0.2
)

// AskOptions configures a single completion call.
type AskOptions struct {
	Creativity Creativity
	MaxTokens  int // 0 = provider default
}

// Model is a hosted text-generation endpoint.
type Model interface {
	Ask(ctx context.Context, prompt string, opts AskOptions) (string, error)
}

// Result is the normalized output of a processor.
type Result struct {
	Title       string
	Description string
	Author      string
}

// apiRequest represents the Anthropic API request body.
type apiRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float32      `json:"temperature"`
	Messages    []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiResponse represents the Anthropic API response body.
type apiResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// quoteIdentification is the answer to the author identification prompt.
type quoteIdentification struct {
	IdentifiedAuthor *string `json:"identifiedAuthor"`
	Description      *string `json:"description"`
}

// quoteCleaning is the answer to the attribution removal prompt.
type quoteCleaning struct {
	CleanedQuote     string  `json:"cleanedQuote"`
	AttributedAuthor *string `json:"attributedAuthor"`
}

type nameComparison struct {
	IsSamePerson bool `json:"isSamePerson"`
}
