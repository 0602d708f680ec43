package culler

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/blink/internal/model"
)

// Status represents the health status of a source URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	}
	return "unreachable"
}

// Result holds the check result for a single Blink.
type Result struct {
	Blink      *model.Blink
	Status     Status
	StatusCode int    // 0 if the connection failed
	Error      string // reason for unreachable sources
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// Options configures a check run.
type Options struct {
	Concurrency int
	Timeout     time.Duration
	// ExcludeDomains lists hosts where a 404 means "possibly private"
	// rather than dead.
	ExcludeDomains []string
	OnProgress     ProgressFunc
	Client         *http.Client // optional
}

// WithSource returns the Blinks that carry a source URL.
func WithSource(blinks []model.Blink) []model.Blink {
	var out []model.Blink
	for _, b := range blinks {
		if b.Source != "" {
			out = append(out, b)
		}
	}
	return out
}

// Check checks the source URL of every Blink concurrently. Blinks without
// a source must be filtered out by the caller.
func Check(ctx context.Context, blinks []model.Blink, opts Options) []Result {
	if len(blinks) == 0 {
		return nil
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	// Silence net/http's own logging of protocol errors.
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	exclude := make(map[string]bool)
	for _, domain := range opts.ExcludeDomains {
		exclude[strings.ToLower(domain)] = true
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	results := make([]Result, len(blinks))
	jobs := make(chan int, len(blinks))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = checkURL(ctx, client, &blinks[idx], exclude)

				if opts.OnProgress != nil {
					progressMu.Lock()
					completed++
					opts.OnProgress(completed, len(blinks))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range blinks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func checkURL(ctx context.Context, client *http.Client, blink *model.Blink, exclude map[string]bool) Result {
	result := Result{Blink: blink}

	// HEAD first, GET for servers that reject it.
	resp, err := request(ctx, client, http.MethodHead, blink.Source)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = request(ctx, client, http.MethodGet, blink.Source)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if isExcludedDomain(blink.Source, exclude) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 5xx, 403 and friends may be temporary or need auth.
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func request(ctx context.Context, client *http.Client, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// isExcludedDomain matches the host and its subdomains against the exclude list.
func isExcludedDomain(rawURL string, exclude map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if exclude[host] {
		return true
	}
	for domain := range exclude {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
