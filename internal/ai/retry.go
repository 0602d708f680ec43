package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// ErrUpgradeRequired is returned when no AI provider is available.
var ErrUpgradeRequired = errors.New("AI features require an API key: set ANTHROPIC_API_KEY or GOOGLE_API_KEY, or configure [ai] in config.toml")

// CheckAccess fails with ErrUpgradeRequired when m cannot serve requests.
// It never touches the network.
func CheckAccess(m Model) error {
	if m == nil {
		return ErrUpgradeRequired
	}
	return nil
}

// RetryPolicy bounds retries of transient model failures.
type RetryPolicy struct {
	MaxRetries int           // retries after the first attempt
	BaseDelay  time.Duration // delay before retry n is BaseDelay * 2^n
}

// DefaultRetryPolicy waits 1s then 2s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 2, BaseDelay: time.Second}
}

// AskWithRetry checks access, then calls m until it succeeds, the policy
// is exhausted or the error is permanent. Context cancellation stops the
// backoff early.
func AskWithRetry(ctx context.Context, m Model, prompt string, opts AskOptions, policy RetryPolicy) (string, error) {
	if err := CheckAccess(m); err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		resp, err := m.Ask(ctx, prompt, opts)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == policy.MaxRetries || !transient(err) {
			break
		}

		timer := time.NewTimer(policy.BaseDelay * time.Duration(1<<attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return "", lastErr
}

// transient reports whether err may succeed on retry. Client errors are
// permanent except timeouts and rate limits.
func transient(err error) bool {
	code := 0
	var statusErr *StatusError
	var geminiErr genai.APIError
	switch {
	case errors.As(err, &statusErr):
		code = statusErr.Code
	case errors.As(err, &geminiErr):
		code = geminiErr.Code
	}

	switch {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return true
	case code >= 400 && code < 500:
		return false
	}
	return true
}
